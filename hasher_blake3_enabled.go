//go:build blake3

package mrkle

import (
	"hash"

	"github.com/zeebo/blake3"
)

// registerBlake3 adds the additive, non-normative "blake3" hasher to the
// registry when the build is compiled with the blake3 tag. This mirrors
// the way the teacher gates its own blake3 transaction hasher behind a
// build tag in internal/tx/hash_blake3.go, and keeps the default build
// free of the cgo-adjacent SIMD dependency klauspost/cpuid pulls in.
func registerBlake3(reg map[string]Descriptor) {
	reg["blake3"] = Descriptor{
		Name:       "blake3",
		DigestSize: 32,
		BlockSize:  64,
		New:        newBlake3,
	}
}

func newBlake3() hash.Hash {
	return blake3.New()
}
