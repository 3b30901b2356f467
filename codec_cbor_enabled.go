//go:build cbor

package mrkle

import "github.com/fxamacker/cbor/v2"

// cborProof and cborMultiProof mirror Proof/MultiProof field-for-field.
// CBOR needs its own wire structs because Hash and Side have no CBOR tags
// of their own and because cbor/v2 marshals exported struct fields using
// their Go names, not the positional layout the canonical binary codec
// uses.
type cborProof struct {
	LeafIndex int
	LeafHash  Hash
	Siblings  []Sibling
}

type cborMultiProof struct {
	LeafCount   int
	LeafIndices []int
	LeafHashes  []Hash
	Decisions   []Hash
}

type cborTreeSnapshot struct {
	HasherName string
	LeafCount  int
	Digests    []Hash
}

// EncodeCBOR serializes a Hash, *Proof, *MultiProof or *Tree using CBOR
// (RFC 8949) instead of the canonical binary layout. It is an additive
// convenience format for environments that already speak CBOR; decoders
// that only understand the canonical format cannot read this output.
func EncodeCBOR(v any) ([]byte, error) {
	switch val := v.(type) {
	case Hash:
		return cbor.Marshal(val)
	case *Proof:
		return cbor.Marshal(cborProof{LeafIndex: val.LeafIndex, LeafHash: val.LeafHash, Siblings: val.Siblings})
	case *MultiProof:
		return cbor.Marshal(cborMultiProof{
			LeafCount:   val.LeafCount,
			LeafIndices: val.LeafIndices,
			LeafHashes:  val.LeafHashes,
			Decisions:   val.Decisions,
		})
	case *Tree:
		return cbor.Marshal(cborTreeSnapshot{
			HasherName: val.descriptor.Name,
			LeafCount:  val.Len(),
			Digests:    val.LevelOrder(),
		})
	default:
		return nil, &SerdeError{Kind: "unsupported_type"}
	}
}

// DecodeCBOR is the inverse of EncodeCBOR.
func DecodeCBOR(b []byte, v any) error {
	switch val := v.(type) {
	case *Hash:
		return cbor.Unmarshal(b, val)
	case *Proof:
		var wire cborProof
		if err := cbor.Unmarshal(b, &wire); err != nil {
			return &SerdeError{Kind: "truncated"}
		}
		val.LeafIndex = wire.LeafIndex
		val.LeafHash = wire.LeafHash
		val.Siblings = wire.Siblings
		return nil
	case *MultiProof:
		var wire cborMultiProof
		if err := cbor.Unmarshal(b, &wire); err != nil {
			return &SerdeError{Kind: "truncated"}
		}
		val.LeafCount = wire.LeafCount
		val.LeafIndices = wire.LeafIndices
		val.LeafHashes = wire.LeafHashes
		val.Decisions = wire.Decisions
		return nil
	case *TreeSnapshot:
		var wire cborTreeSnapshot
		if err := cbor.Unmarshal(b, &wire); err != nil {
			return &SerdeError{Kind: "truncated"}
		}
		val.HasherName = wire.HasherName
		val.LeafCount = wire.LeafCount
		val.Digests = wire.Digests
		return nil
	default:
		return &SerdeError{Kind: "unsupported_type"}
	}
}
