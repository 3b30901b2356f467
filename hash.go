package mrkle

import (
	"encoding/hex"
	"strconv"
)

// Hash is a fixed-width digest produced by a Descriptor's hash function.
// Its length is whatever that hasher reports as DigestSize; the package
// never assumes a specific width beyond what the active Descriptor says.
type Hash []byte

// NewHash copies b into a freshly allocated Hash so the returned value is
// independent of whatever buffer b came from.
func NewHash(b []byte) Hash {
	h := make(Hash, len(b))
	copy(h, b)
	return h
}

// Equal reports whether two hashes are byte-for-byte identical.
func (h Hash) Equal(other Hash) bool {
	if len(h) != len(other) {
		return false
	}
	for i := range h {
		if h[i] != other[i] {
			return false
		}
	}
	return true
}

// Compare returns -1, 0 or 1 using lexicographic ordering over the raw
// bytes, satisfying a total order even across hashes of different length
// (the shorter hash sorts first on a common prefix).
func (h Hash) Compare(other Hash) int {
	n := len(h)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if h[i] != other[i] {
			if h[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(h) < len(other):
		return -1
	case len(h) > len(other):
		return 1
	default:
		return 0
	}
}

// Hex returns the lowercase hex encoding of the hash.
func (h Hash) Hex() string {
	return hex.EncodeToString(h)
}

// String implements fmt.Stringer so a Hash prints as hex rather than a
// raw byte slice in logs and test failures.
func (h Hash) String() string {
	return h.Hex()
}

// IsZero reports whether every byte of the hash is zero. The all-zero value
// is permitted by the specification and carries no special meaning.
func (h Hash) IsZero() bool {
	for _, b := range h {
		if b != 0 {
			return false
		}
	}
	return true
}

// ParseHash decodes a hex string into a Hash, returning a HexDecoderError
// on malformed input.
func ParseHash(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, &HexDecoderError{Input: s, Err: err}
	}
	return Hash(b), nil
}

// HexEncoderError reports a failure encoding a Hash to a string. It exists
// as a counterpart to HexDecoderError; Hash.Hex itself cannot fail, and no
// function in this package returns a HexEncoderError.
type HexEncoderError struct {
	Width int
	Want  int
}

func (e *HexEncoderError) Error() string {
	return "mrkle: hex: cannot encode hash of width " +
		strconv.Itoa(e.Width) + ", expected " + strconv.Itoa(e.Want)
}
