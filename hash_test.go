package mrkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashHexRoundTrip(t *testing.T) {
	for _, name := range SupportedHashers() {
		name := name
		t.Run(name, func(t *testing.T) {
			desc, err := HasherByName(name)
			require.NoError(t, err)

			h := leafDigest(desc, []byte("payload"))
			got, err := ParseHash(h.Hex())
			require.NoError(t, err)
			require.True(t, h.Equal(got))
		})
	}
}

func TestHashEqualDifferentLength(t *testing.T) {
	a := NewHash([]byte{1, 2, 3})
	b := NewHash([]byte{1, 2})
	require.False(t, a.Equal(b))
}

func TestHashCompareTotalOrder(t *testing.T) {
	a := NewHash([]byte{1, 2})
	b := NewHash([]byte{1, 2, 0})
	c := NewHash([]byte{1, 3})

	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, 1, b.Compare(a))
	require.Equal(t, -1, a.Compare(c))
	require.Equal(t, 0, a.Compare(NewHash([]byte{1, 2})))
}

func TestHashIsZero(t *testing.T) {
	require.True(t, Hash(make([]byte, 32)).IsZero())
	require.False(t, NewHash([]byte{0, 0, 1}).IsZero())
}

func TestParseHashRejectsMalformed(t *testing.T) {
	_, err := ParseHash("not-hex")
	require.Error(t, err)

	var decErr *HexDecoderError
	require.ErrorAs(t, err, &decErr)
}

func TestNewHashCopiesBuffer(t *testing.T) {
	b := []byte{1, 2, 3}
	h := NewHash(b)
	b[0] = 0xff
	require.Equal(t, byte(1), h[0])
}
