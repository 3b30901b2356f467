package mrkle

// MaxLeaves caps the number of leaves Build will accept. It exists purely
// as a sanity backstop (per spec.md's TreeError::TooLarge) against
// accidental misuse (e.g. passing a byte stream instead of a leaf slice);
// it is not a meaningful cryptographic or performance limit.
const MaxLeaves = 1 << 24

// Tree is an immutable, built Merkle tree. Every exported method is safe
// for concurrent use by multiple goroutines: nothing here mutates after
// Build returns.
type Tree struct {
	descriptor  Descriptor
	nodes       []Node
	leafIndices []NodeIndex
	root        NodeIndex
	arity       int
	warnings    []string
}

// Descriptor returns the hasher descriptor this tree was built with.
func (t *Tree) Descriptor() Descriptor { return t.descriptor }

// Arity returns the tree's branching factor. The canonical binary variant
// always returns 2.
func (t *Tree) Arity() int { return t.arity }

// Warnings returns advisory messages attached at construction time (for
// example, a note that SHA-1 was selected and should not be trusted
// against an adversarial prover). It is always non-nil but may be empty.
func (t *Tree) Warnings() []string {
	return append([]string{}, t.warnings...)
}

// Root returns the digest of the root node.
func (t *Tree) Root() (Hash, error) {
	if len(t.nodes) == 0 {
		return nil, ErrMissingRoot
	}
	return t.nodes[t.root].digest, nil
}

// Len returns the number of leaves in the tree.
func (t *Tree) Len() int {
	return len(t.leafIndices)
}

// Depth returns ⌈log2(n)⌉, or 0 for a single-leaf tree.
func (t *Tree) Depth() int {
	n := t.Len()
	d := 0
	for size := 1; size < n; size *= 2 {
		d++
	}
	return d
}

// LeafDigest returns the digest of the i-th leaf in caller-supplied order.
func (t *Tree) LeafDigest(i int) (Hash, error) {
	if i < 0 || i >= len(t.leafIndices) {
		return nil, errOutOfRange(i, len(t.leafIndices))
	}
	return t.nodes[t.leafIndices[i]].digest, nil
}

// NodeAt returns the node stored at idx.
func (t *Tree) NodeAt(idx NodeIndex) (Node, error) {
	if int(idx) >= len(t.nodes) {
		return Node{}, &NodeError{Index: int(idx), Len: len(t.nodes)}
	}
	return t.nodes[idx], nil
}

// RootIndex returns the tree-local index of the root node.
func (t *Tree) RootIndex() NodeIndex { return t.root }

// LeafIndices returns the tree-local indices of every leaf, in the
// caller-supplied leaf order.
func (t *Tree) LeafIndices() []NodeIndex {
	return append([]NodeIndex(nil), t.leafIndices...)
}

// LevelOrder returns the digest of every node in level order, leaves
// first, exactly the sequence the Codec's tree-snapshot format expects.
// Because the Builder appends nodes level by level as it folds pairs
// upward, this is simply the storage order and costs one copy.
func (t *Tree) LevelOrder() []Hash {
	out := make([]Hash, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n.digest
	}
	return out
}

// levelSizes replicates, level by level, the node counts Build produces
// for n leaves: level 0 has n nodes, each subsequent level has
// ceil(previous/2) nodes, down to a single root. Multi-proof generation
// and verification both need this shape to know which node positions
// pair together at each level.
func levelSizes(n int) []int {
	sizes := []int{n}
	for sizes[len(sizes)-1] > 1 {
		sizes = append(sizes, (sizes[len(sizes)-1]+1)/2)
	}
	return sizes
}

// PreOrder performs a root-first, depth-first walk and returns the digest
// of each visited node. It exists for debugging and for callers that want
// a traversal independent of the storage layout.
func (t *Tree) PreOrder() []Hash {
	if len(t.nodes) == 0 {
		return nil
	}
	out := make([]Hash, 0, len(t.nodes))
	var walk func(idx NodeIndex)
	walk = func(idx NodeIndex) {
		n := t.nodes[idx]
		out = append(out, n.digest)
		var prev NodeIndex
		hasPrev := false
		for _, c := range n.children {
			if hasPrev && c == prev {
				// Self-sibling slot from odd-count duplication; no
				// distinct node was stored for the duplicate.
				continue
			}
			walk(c)
			prev, hasPrev = c, true
		}
	}
	walk(t.root)
	return out
}
