package mrkle

import (
	"testing"

	"github.com/stretchr/testify/require"

	refmerkle "github.com/LVivona/mrkle/internal/merkle"
)

func sampleLeaves(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{byte(i), byte(i >> 8)}
	}
	return out
}

func TestBuildRejectsEmpty(t *testing.T) {
	desc, _ := HasherByName("sha256")
	_, err := Build(nil, desc)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestBuildRejectsTooLarge(t *testing.T) {
	desc, _ := HasherByName("sha256")
	leaves := make([][]byte, MaxLeaves+1)
	_, err := Build(leaves, desc)
	require.Error(t, err)
	var treeErr *TreeError
	require.ErrorAs(t, err, &treeErr)
	require.Equal(t, "too_large", treeErr.Kind)
}

func TestBuildSingleLeaf(t *testing.T) {
	desc, _ := HasherByName("sha256")
	tree, err := Build([][]byte{[]byte("only")}, desc)
	require.NoError(t, err)
	require.Equal(t, 1, tree.Len())
	require.Equal(t, 0, tree.Depth())

	root, err := tree.Root()
	require.NoError(t, err)
	require.Equal(t, leafDigest(desc, []byte("only")), root)
}

func TestBuildMatchesReferenceRootForVariousSizes(t *testing.T) {
	desc, _ := HasherByName("sha256")
	for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 16, 17} {
		n := n
		t.Run("", func(t *testing.T) {
			leaves := sampleLeaves(n)
			tree, err := Build(leaves, desc)
			require.NoError(t, err)

			root, err := tree.Root()
			require.NoError(t, err)
			require.Equal(t, refmerkle.ReferenceRoot(leaves), []byte(root))
		})
	}
}

func TestBuildStrictRejectsDuplicateLeaves(t *testing.T) {
	desc, _ := HasherByName("sha256")
	leaves := [][]byte{[]byte("a"), []byte("b"), []byte("a")}
	_, err := NewBuilder(desc).WithStrictValidation(true).Build(leaves)
	require.Error(t, err)
}

func TestBuildNonStrictAllowsDuplicateLeaves(t *testing.T) {
	desc, _ := HasherByName("sha256")
	leaves := [][]byte{[]byte("a"), []byte("b"), []byte("a")}
	tree, err := Build(leaves, desc)
	require.NoError(t, err)
	require.Equal(t, 3, tree.Len())
}

func TestBuildSameLeavesDifferentOrderDifferentRoot(t *testing.T) {
	desc, _ := HasherByName("sha256")
	a, err := Build([][]byte{[]byte("x"), []byte("y")}, desc)
	require.NoError(t, err)
	b, err := Build([][]byte{[]byte("y"), []byte("x")}, desc)
	require.NoError(t, err)

	rootA, _ := a.Root()
	rootB, _ := b.Root()
	require.False(t, rootA.Equal(rootB))
}

func TestBuildWeakHashWarns(t *testing.T) {
	desc, _ := HasherByName("sha1")
	tree, err := Build([][]byte{[]byte("a")}, desc)
	require.NoError(t, err)
	require.NotEmpty(t, tree.Warnings())
}

func TestBuildWithBuilderMatchesBuild(t *testing.T) {
	desc, _ := HasherByName("sha256")
	leaves := sampleLeaves(5)

	a, err := Build(leaves, desc)
	require.NoError(t, err)
	b, err := BuildWithBuilder(NewBuilder(desc), leaves)
	require.NoError(t, err)

	rootA, _ := a.Root()
	rootB, _ := b.Root()
	require.True(t, rootA.Equal(rootB))
}

func TestFromDictFormats(t *testing.T) {
	desc, _ := HasherByName("sha256")
	entries := []DictEntry{
		{Key: []byte("alpha"), Value: []byte("1")},
		{Key: []byte("beta"), Value: []byte("2")},
	}

	flatten, err := FromDict(entries, desc, FormatFlatten)
	require.NoError(t, err)
	keyThenValue, err := FromDict(entries, desc, FormatKeyThenValue)
	require.NoError(t, err)
	valueOnly, err := FromDict(entries, desc, FormatValueOnly)
	require.NoError(t, err)

	rFlatten, _ := flatten.Root()
	rKV, _ := keyThenValue.Root()
	rValue, _ := valueOnly.Root()

	require.False(t, rFlatten.Equal(rKV))
	require.False(t, rFlatten.Equal(rValue))
	require.False(t, rKV.Equal(rValue))
}

func TestFlattenEntrySeparatorLayout(t *testing.T) {
	e := DictEntry{Key: []byte("k"), Value: []byte("v")}
	got := flattenEntry(e, FormatFlatten)
	require.Equal(t, []byte{'k', unitSeparator, 'v'}, got)
}

func TestFlattenEntryValueOnlyIgnoresKey(t *testing.T) {
	a := flattenEntry(DictEntry{Key: []byte("k1"), Value: []byte("v")}, FormatValueOnly)
	b := flattenEntry(DictEntry{Key: []byte("k2"), Value: []byte("v")}, FormatValueOnly)
	require.Equal(t, a, b)
}
