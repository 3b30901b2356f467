package mrkle

import "fmt"

// LeafFormat selects the byte layout FromDict uses to flatten an ordered
// key/value mapping into a leaf sequence. See SPEC_FULL.md §4.3 for the
// normative byte layout of each variant.
type LeafFormat uint8

const (
	// FormatFlatten concatenates key, a 0x1f separator, and value.
	FormatFlatten LeafFormat = iota
	// FormatKeyThenValue length-prefixes key and value independently.
	FormatKeyThenValue
	// FormatValueOnly uses the value bytes verbatim; key only fixes order.
	FormatValueOnly
)

// unitSeparator is the byte FormatFlatten uses to join key and value. It
// is ASCII Unit Separator (0x1F), chosen because ordinary UTF-8 text keys
// cannot contain it without deliberately embedding a control character.
const unitSeparator = 0x1f

// DictEntry is one key/value pair fed to FromDict. Entries are flattened
// in slice order, which is the "ordered mapping" the specification
// requires — Go's built-in map has no stable iteration order, so it
// cannot stand in for one.
type DictEntry struct {
	Key   []byte
	Value []byte
}

// Builder configures and runs the deterministic bottom-up construction
// algorithm. The zero value is not usable; construct one with NewBuilder.
//
// Builder mirrors the configuration surface of the original MrkleBuilder
// (hasher, partition size, padding strategy, strict validation) adapted
// to Go method chaining in place of a derive-heavy struct-literal builder.
type Builder struct {
	descriptor Descriptor
	format     LeafFormat
	strict     bool
}

// NewBuilder returns a Builder that hashes with d and otherwise uses the
// library defaults: FormatFlatten as the recorded leaf-format, non-strict
// validation.
func NewBuilder(d Descriptor) *Builder {
	return &Builder{descriptor: d, format: FormatFlatten}
}

// WithLeafFormat records a leaf-format on the Builder. Builder.Build takes
// leaves that are already flattened and does not read it, and the
// package-level FromDict takes its format as an argument instead.
func (b *Builder) WithLeafFormat(f LeafFormat) *Builder {
	b.format = f
	return b
}

// WithStrictValidation toggles extra input validation. The only extra
// check is duplicate-leaf detection, which is skipped unless strict.
func (b *Builder) WithStrictValidation(strict bool) *Builder {
	b.strict = strict
	return b
}

// Build constructs a Tree from an ordered sequence of leaf payloads.
func (b *Builder) Build(leaves [][]byte) (*Tree, error) {
	return build(b.descriptor, leaves, b.strict)
}

// Build constructs a Tree from leaves using hasher h with default
// (non-strict) validation. It is the single-call convenience form of
// NewBuilder(h).Build(leaves).
func Build(leaves [][]byte, h Descriptor) (*Tree, error) {
	return build(h, leaves, false)
}

// BuildWithBuilder constructs a Tree using an already-configured Builder.
// It is equivalent to b.Build(leaves) and exists for callers that prefer
// the free-function style Build uses for the common case.
func BuildWithBuilder(b *Builder, leaves [][]byte) (*Tree, error) {
	return b.Build(leaves)
}

func build(d Descriptor, leaves [][]byte, strict bool) (*Tree, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	n := len(leaves)
	if n == 0 {
		return nil, ErrEmpty
	}
	if n > MaxLeaves {
		return nil, errTooLarge(n)
	}
	if strict {
		seen := make(map[string]int, n)
		for i, p := range leaves {
			key := string(p)
			if j, ok := seen[key]; ok {
				return nil, fmt.Errorf("mrkle: tree: strict validation: leaf %d duplicates leaf %d", i, j)
			}
			seen[key] = i
		}
	}

	// A perfectly balanced binary tree over n leaves has 2n-1 nodes. Under
	// the duplicate-last convention every odd-sized level above the root
	// adds one more interior node (the parent of its self-paired last
	// entry), so append grows the slice past this capacity in that case.
	nodes := make([]Node, 0, 2*n-1)

	current := make([]NodeIndex, n)
	for i, payload := range leaves {
		nodes = append(nodes, Node{digest: leafDigest(d, payload), kind: KindLeaf})
		current[i] = NodeIndex(len(nodes) - 1)
	}
	leafIndices := append([]NodeIndex(nil), current...)

	for len(current) > 1 {
		next := make([]NodeIndex, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			leftIdx := current[i]
			rightIdx := leftIdx
			if i+1 < len(current) {
				rightIdx = current[i+1]
			}

			left := nodes[leftIdx].digest
			right := nodes[rightIdx].digest
			digest := interiorDigest(d, left, right)

			nodes = append(nodes, Node{
				digest:   digest,
				kind:     KindInterior,
				children: []NodeIndex{leftIdx, rightIdx},
			})
			parentIdx := NodeIndex(len(nodes) - 1)

			nodes[leftIdx].parent, nodes[leftIdx].hasParent = parentIdx, true
			if rightIdx != leftIdx {
				nodes[rightIdx].parent, nodes[rightIdx].hasParent = parentIdx, true
			}

			next = append(next, parentIdx)
		}
		current = next
	}

	t := &Tree{
		descriptor:  d,
		nodes:       nodes,
		leafIndices: leafIndices,
		root:        current[0],
		arity:       2,
	}
	if IsWeakHash(d.Name) {
		t.warnings = append(t.warnings, "SHA-1 is not collision-resistant; proofs built with it should not be trusted against an adversarial prover")
	}
	return t, nil
}

// FromDict flattens an ordered key/value mapping into a leaf sequence and
// builds a Tree over it. Keys are never duplicated into the tree itself
// under FormatValueOnly; they only fix the leaf order.
func FromDict(entries []DictEntry, h Descriptor, format LeafFormat) (*Tree, error) {
	leaves := make([][]byte, len(entries))
	for i, e := range entries {
		leaves[i] = flattenEntry(e, format)
	}
	return Build(leaves, h)
}

func flattenEntry(e DictEntry, format LeafFormat) []byte {
	switch format {
	case FormatKeyThenValue:
		buf := make([]byte, 0, 8+len(e.Key)+len(e.Value))
		buf = appendUint32LE(buf, uint32(len(e.Key)))
		buf = append(buf, e.Key...)
		buf = appendUint32LE(buf, uint32(len(e.Value)))
		buf = append(buf, e.Value...)
		return buf
	case FormatValueOnly:
		out := make([]byte, len(e.Value))
		copy(out, e.Value)
		return out
	default: // FormatFlatten
		buf := make([]byte, 0, len(e.Key)+1+len(e.Value))
		buf = append(buf, e.Key...)
		buf = append(buf, unitSeparator)
		buf = append(buf, e.Value...)
		return buf
	}
}

func appendUint32LE(buf []byte, v uint32) []byte {
	return append(buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
