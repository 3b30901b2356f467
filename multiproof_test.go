package mrkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMultiProofVerifiesSubsets(t *testing.T) {
	desc, _ := HasherByName("sha256")
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 16, 17} {
		leaves := sampleLeaves(n)
		tree, err := Build(leaves, desc)
		require.NoError(t, err)
		root, _ := tree.Root()

		subsets := [][]int{
			{0},
			{0, n - 1},
		}
		if n >= 3 {
			subsets = append(subsets, []int{0, n / 2, n - 1})
		}
		if n >= 2 {
			all := make([]int, n)
			for i := range all {
				all[i] = i
			}
			subsets = append(subsets, all)
		}

		for _, subset := range subsets {
			mp, err := tree.MultiProof(subset)
			require.NoError(t, err, "n=%d subset=%v", n, subset)

			ok, err := mp.Verify(root, desc)
			require.NoError(t, err, "n=%d subset=%v", n, subset)
			require.True(t, ok, "n=%d subset=%v", n, subset)
		}
	}
}

func TestMultiProofDeduplicatesAndSortsIndices(t *testing.T) {
	desc, _ := HasherByName("sha256")
	tree, err := Build(sampleLeaves(8), desc)
	require.NoError(t, err)

	mp, err := tree.MultiProof([]int{5, 1, 5, 1, 3})
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 5}, mp.LeafIndices)
}

func TestMultiProofRejectsEmptySet(t *testing.T) {
	desc, _ := HasherByName("sha256")
	tree, err := Build(sampleLeaves(4), desc)
	require.NoError(t, err)

	_, err = tree.MultiProof(nil)
	require.ErrorIs(t, err, ErrEmptyIndexSet)
}

func TestMultiProofRejectsOutOfRangeIndex(t *testing.T) {
	desc, _ := HasherByName("sha256")
	tree, err := Build(sampleLeaves(4), desc)
	require.NoError(t, err)

	_, err = tree.MultiProof([]int{4})
	require.Error(t, err)
}

func TestMultiProofDetectsTamperedLeafHash(t *testing.T) {
	desc, _ := HasherByName("sha256")
	tree, err := Build(sampleLeaves(8), desc)
	require.NoError(t, err)
	root, _ := tree.Root()

	mp, err := tree.MultiProof([]int{1, 6})
	require.NoError(t, err)
	mp.LeafHashes[0] = NewHash(append([]byte(nil), mp.LeafHashes[0]...))
	mp.LeafHashes[0][0] ^= 0xff

	ok, err := mp.Verify(root, desc)
	require.False(t, ok)
	require.ErrorIs(t, err, ErrRootMismatch)
}

func TestMultiProofDetectsTamperedDecision(t *testing.T) {
	desc, _ := HasherByName("sha256")
	tree, err := Build(sampleLeaves(8), desc)
	require.NoError(t, err)
	root, _ := tree.Root()

	mp, err := tree.MultiProof([]int{1, 6})
	require.NoError(t, err)
	require.NotEmpty(t, mp.Decisions)
	mp.Decisions[0] = NewHash(append([]byte(nil), mp.Decisions[0]...))
	mp.Decisions[0][0] ^= 0xff

	ok, err := mp.Verify(root, desc)
	require.False(t, ok)
	require.ErrorIs(t, err, ErrRootMismatch)
}

func TestMultiProofSingleIndexMatchesSingleProof(t *testing.T) {
	desc, _ := HasherByName("sha256")
	leaves := sampleLeaves(9)
	tree, err := Build(leaves, desc)
	require.NoError(t, err)
	root, _ := tree.Root()

	p, err := tree.Proof(4)
	require.NoError(t, err)
	pOK, err := p.Verify(leaves[4], root, desc)
	require.NoError(t, err)
	require.True(t, pOK)

	mp, err := tree.MultiProof([]int{4})
	require.NoError(t, err)
	mpOK, err := mp.Verify(root, desc)
	require.NoError(t, err)
	require.True(t, mpOK)
}
