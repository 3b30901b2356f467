package mrkle

import "sort"

// MultiProof is a compact inclusion witness for a set of leaves. Instead of
// one full sibling path per leaf, it carries only the decision hashes a
// verifier cannot derive by combining the leaves' own ancestors with each
// other — the same savings a caller gets from batching, made explicit in
// the wire format instead of left to codec-level deduplication.
//
// LeafCount pins the shape of the tree the proof was cut from. Without it a
// verifier cannot tell, at an odd-sized level, whether a lone node pairs
// with a decision hash or duplicates itself — the same ambiguity Build
// resolves at construction time by knowing the full leaf count up front.
type MultiProof struct {
	LeafCount   int
	LeafIndices []int
	LeafHashes  []Hash
	Decisions   []Hash
}

// MultiProof builds a batch inclusion proof for the leaves at indices.
// Duplicate indices are ignored; the result is always sorted ascending,
// matching the canonical left-to-right, bottom-up order Verify expects.
func (t *Tree) MultiProof(indices []int) (*MultiProof, error) {
	idx, err := normalizeIndices(indices, t.Len())
	if err != nil {
		return nil, err
	}

	sizes := levelSizes(t.Len())
	offsets := make([]int, len(sizes))
	for i := 1; i < len(sizes); i++ {
		offsets[i] = offsets[i-1] + sizes[i-1]
	}

	present := make(map[int]Hash, len(idx))
	leafHashes := make([]Hash, len(idx))
	for i, p := range idx {
		h := t.nodes[offsets[0]+p].digest
		present[p] = h
		leafHashes[i] = h
	}

	var decisions []Hash
	for level := 0; level < len(sizes)-1; level++ {
		size := sizes[level]
		next := make(map[int]Hash)
		for pos := 0; pos < size; pos += 2 {
			hasRight := pos+1 < size
			leftHash, leftPresent := present[pos]
			var rightHash Hash
			var rightPresent bool
			if hasRight {
				rightHash, rightPresent = present[pos+1]
			}

			switch {
			case !leftPresent && !rightPresent:
				continue
			case !hasRight:
				// Lone node at an odd-sized level: duplicate-last rule,
				// no decision hash required.
				rightHash = leftHash
			case leftPresent && !rightPresent:
				rightHash = t.nodes[offsets[level]+pos+1].digest
				decisions = append(decisions, rightHash)
			case !leftPresent && rightPresent:
				leftHash = t.nodes[offsets[level]+pos].digest
				decisions = append(decisions, leftHash)
			}

			next[pos/2] = interiorDigest(t.descriptor, leftHash, rightHash)
		}
		present = next
	}

	return &MultiProof{
		LeafCount:   t.Len(),
		LeafIndices: idx,
		LeafHashes:  leafHashes,
		Decisions:   decisions,
	}, nil
}

// Verify recomputes a candidate root from mp's leaf hashes and decision
// stream and reports whether it equals root. It does not take leaf payloads
// directly; callers that only have payloads should hash them with the same
// domain-separated leaf digest the tree used before calling Verify — see
// LeafHashes.
func (mp *MultiProof) Verify(root Hash, h Descriptor) (bool, error) {
	if err := h.validate(); err != nil {
		return false, err
	}
	if len(mp.LeafIndices) == 0 || len(mp.LeafIndices) != len(mp.LeafHashes) {
		return false, errMalformed(len(mp.LeafIndices), len(mp.LeafHashes))
	}

	sizes := levelSizes(mp.LeafCount)

	present := make(map[int]Hash, len(mp.LeafIndices))
	for i, p := range mp.LeafIndices {
		if p < 0 || p >= mp.LeafCount {
			return false, errInvalidIndex(p)
		}
		present[p] = mp.LeafHashes[i]
	}

	decisions := mp.Decisions
	nextDecision := func() (Hash, error) {
		if len(decisions) == 0 {
			return nil, errMalformed(1, 0)
		}
		d := decisions[0]
		decisions = decisions[1:]
		return d, nil
	}

	for level := 0; level < len(sizes)-1; level++ {
		size := sizes[level]
		next := make(map[int]Hash)
		for pos := 0; pos < size; pos += 2 {
			hasRight := pos+1 < size
			leftHash, leftPresent := present[pos]
			var rightHash Hash
			var rightPresent bool
			if hasRight {
				rightHash, rightPresent = present[pos+1]
			}

			switch {
			case !leftPresent && !rightPresent:
				continue
			case !hasRight:
				rightHash = leftHash
			case leftPresent && !rightPresent:
				d, err := nextDecision()
				if err != nil {
					return false, err
				}
				rightHash = d
			case !leftPresent && rightPresent:
				d, err := nextDecision()
				if err != nil {
					return false, err
				}
				leftHash = d
			}

			next[pos/2] = interiorDigest(h, leftHash, rightHash)
		}
		present = next
	}

	if len(decisions) != 0 {
		return false, errMalformed(0, len(decisions))
	}
	if len(present) != 1 {
		return false, errMalformed(1, len(present))
	}
	recomputed := present[0]
	if recomputed == nil {
		return false, errMalformed(1, 0)
	}
	if !recomputed.Equal(root) {
		return false, ErrRootMismatch
	}
	return true, nil
}

func normalizeIndices(indices []int, n int) ([]int, error) {
	if len(indices) == 0 {
		return nil, ErrEmptyIndexSet
	}
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= n {
			return nil, errInvalidIndex(i)
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}
