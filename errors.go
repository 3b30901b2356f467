package mrkle

import "fmt"

// MerkleError is implemented by every error kind this package returns from
// tree construction, proof handling and hashing. It exists so callers can
// write a single `var merr mrkle.MerkleError; errors.As(err, &merr)` guard
// without caring which concrete kind they got back.
type MerkleError interface {
	error
	merkleError()
}

// TreeError reports a failure in building or indexing a Tree.
type TreeError struct {
	Kind  string
	Index int
	Len   int
}

func (e *TreeError) merkleError() {}

func (e *TreeError) Error() string {
	switch e.Kind {
	case "empty":
		return "mrkle: tree: empty leaf set"
	case "too_large":
		return fmt.Sprintf("mrkle: tree: leaf count %d exceeds implementation cap", e.Len)
	case "out_of_range":
		return fmt.Sprintf("mrkle: tree: index %d out of range (len=%d)", e.Index, e.Len)
	case "missing_root":
		return "mrkle: tree: no root node"
	default:
		return "mrkle: tree: " + e.Kind
	}
}

// ErrEmpty is returned by Build when the leaf sequence is empty.
var ErrEmpty = &TreeError{Kind: "empty"}

// ErrMissingRoot is returned when a Tree with no root is queried.
var ErrMissingRoot = &TreeError{Kind: "missing_root"}

func errTooLarge(n int) error { return &TreeError{Kind: "too_large", Len: n} }

func errOutOfRange(i, n int) error { return &TreeError{Kind: "out_of_range", Index: i, Len: n} }

// ProofError reports a failure building or verifying a Proof.
type ProofError struct {
	Kind  string
	Index int
	Want  int
	Got   int
}

func (e *ProofError) merkleError() {}

func (e *ProofError) Error() string {
	switch e.Kind {
	case "empty_index_set":
		return "mrkle: proof: empty index set"
	case "invalid_index":
		return fmt.Sprintf("mrkle: proof: invalid leaf index %d", e.Index)
	case "malformed":
		return fmt.Sprintf("mrkle: proof: malformed proof (want %d, got %d)", e.Want, e.Got)
	case "root_mismatch":
		return "mrkle: proof: recomputed root does not match expected root"
	default:
		return "mrkle: proof: " + e.Kind
	}
}

// ErrEmptyIndexSet is returned by Tree.Proof when called with no indices.
var ErrEmptyIndexSet = &ProofError{Kind: "empty_index_set"}

// ErrRootMismatch is returned by Proof.Verify when the proof is internally
// well-formed but recomputes to a root different from the expected one.
var ErrRootMismatch = &ProofError{Kind: "root_mismatch"}

func errInvalidIndex(i int) error { return &ProofError{Kind: "invalid_index", Index: i} }

func errMalformed(want, got int) error { return &ProofError{Kind: "malformed", Want: want, Got: got} }

// HashError reports a failure resolving or constructing a hasher.
type HashError struct {
	Kind string
	Name string
}

func (e *HashError) merkleError() {}

func (e *HashError) Error() string {
	switch e.Kind {
	case "unknown_algorithm":
		return fmt.Sprintf("mrkle: hash: unknown algorithm %q", e.Name)
	case "bad_descriptor":
		return fmt.Sprintf("mrkle: hash: invalid descriptor for %q", e.Name)
	default:
		return "mrkle: hash: " + e.Kind
	}
}

func errUnknownAlgorithm(name string) error { return &HashError{Kind: "unknown_algorithm", Name: name} }

func errBadDescriptor(name string) error { return &HashError{Kind: "bad_descriptor", Name: name} }

// SerdeError reports a failure encoding or decoding a Hash, Proof or Tree
// snapshot through the binary or CBOR codec.
type SerdeError struct {
	Kind string
	Want int
	Got  int
}

func (e *SerdeError) merkleError() {}

func (e *SerdeError) Error() string {
	switch e.Kind {
	case "truncated":
		return fmt.Sprintf("mrkle: codec: truncated input (want at least %d bytes, got %d)", e.Want, e.Got)
	case "unknown_version":
		return "mrkle: codec: unknown snapshot version"
	case "unknown_hasher":
		return "mrkle: codec: unknown hasher name in snapshot header"
	case "bad_magic":
		return "mrkle: codec: bad magic bytes"
	case "size_mismatch":
		return fmt.Sprintf("mrkle: codec: hash field size mismatch (want %d, got %d)", e.Want, e.Got)
	case "unsupported_type":
		return "mrkle: codec: unsupported value type"
	default:
		return "mrkle: codec: " + e.Kind
	}
}

func errTruncated(want, got int) error { return &SerdeError{Kind: "truncated", Want: want, Got: got} }

func errSizeMismatch(want, got int) error {
	return &SerdeError{Kind: "size_mismatch", Want: want, Got: got}
}

// HexDecoderError reports a failure parsing a hex-encoded Hash. It is a
// sibling to MerkleError, not a subtype, matching the codec boundary drawn
// by the specification.
type HexDecoderError struct {
	Input string
	Err   error
}

func (e *HexDecoderError) Error() string {
	return fmt.Sprintf("mrkle: hex: cannot decode %q: %v", e.Input, e.Err)
}

func (e *HexDecoderError) Unwrap() error { return e.Err }
