//go:build !cbor

package mrkle

// ErrCBORDisabled is returned by EncodeCBOR/DecodeCBOR when this binary
// was built without -tags cbor.
var ErrCBORDisabled = &SerdeError{Kind: "cbor_disabled"}

// EncodeCBOR is a stub in the default build. Build with -tags cbor to
// pull in github.com/fxamacker/cbor/v2 and get the real implementation.
func EncodeCBOR(v any) ([]byte, error) {
	return nil, ErrCBORDisabled
}

// DecodeCBOR is a stub in the default build; see EncodeCBOR.
func DecodeCBOR(b []byte, v any) error {
	return ErrCBORDisabled
}
