package mrkle

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// domainLeaf and domainInterior are the single-byte domain separation tags
// prefixed to hasher input. They prevent a leaf digest from ever being
// mistaken for an interior digest, and vice versa, closing the
// second-preimage gap that an untagged Merkle tree is vulnerable to.
const (
	domainLeaf     byte = 0x00
	domainInterior byte = 0x01
)

// Descriptor names and sizes a concrete hash algorithm. New is a factory:
// it must return a fresh, zeroed hash.Hash on every call so construction
// can be run concurrently by independent callers (the factory itself
// carries no state).
type Descriptor struct {
	Name       string
	DigestSize int
	BlockSize  int
	New        func() hash.Hash
}

func (d Descriptor) validate() error {
	if d.New == nil || d.DigestSize <= 0 || d.BlockSize <= 0 || d.Name == "" {
		return errBadDescriptor(d.Name)
	}
	return nil
}

var (
	registryOnce sync.Once
	registry     map[string]Descriptor
)

func buildRegistry() map[string]Descriptor {
	return map[string]Descriptor{
		"sha1":       {Name: "sha1", DigestSize: sha1.Size, BlockSize: sha1.BlockSize, New: sha1.New},
		"sha224":     {Name: "sha224", DigestSize: sha256.Size224, BlockSize: sha256.BlockSize, New: sha256.New224},
		"sha256":     {Name: "sha256", DigestSize: sha256.Size, BlockSize: sha256.BlockSize, New: sha256.New},
		"sha384":     {Name: "sha384", DigestSize: sha512.Size384, BlockSize: sha512.BlockSize, New: sha512.New384},
		"sha512":     {Name: "sha512", DigestSize: sha512.Size, BlockSize: sha512.BlockSize, New: sha512.New},
		// golang.org/x/crypto/sha3 only exports the legacy (pre-NIST-padding)
		// Keccak construction at the 256 and 512 bit widths (the ones Ethereum
		// made famous). keccak224/keccak384 are completed here using the
		// standard SHA3-224/384 constructions from the same package, which
		// share the Keccak-f permutation core but use NIST's domain-separated
		// padding rather than the legacy 0x01 pad. See DESIGN.md.
		"keccak224":  {Name: "keccak224", DigestSize: 28, BlockSize: 144, New: sha3.New224},
		"keccak256":  {Name: "keccak256", DigestSize: 32, BlockSize: 136, New: sha3.NewLegacyKeccak256},
		"keccak384":  {Name: "keccak384", DigestSize: 48, BlockSize: 104, New: sha3.New384},
		"keccak512":  {Name: "keccak512", DigestSize: 64, BlockSize: 72, New: sha3.NewLegacyKeccak512},
		"blake2b512": {Name: "blake2b512", DigestSize: 64, BlockSize: 128, New: newBlake2b512},
		"blake2s256": {Name: "blake2s256", DigestSize: 32, BlockSize: 64, New: newBlake2s256},
	}
}

func registryInit() {
	registryOnce.Do(func() {
		registry = buildRegistry()
		registerBlake3(registry)
	})
}

// HasherByName resolves one of the normative hasher names (plus any
// additive algorithm this build was compiled with) to its Descriptor.
// Unknown names produce a HashError.
func HasherByName(name string) (Descriptor, error) {
	registryInit()
	d, ok := registry[name]
	if !ok {
		return Descriptor{}, errUnknownAlgorithm(name)
	}
	return d, nil
}

// SupportedHashers returns the names of every hasher this build knows
// about, in no particular order.
func SupportedHashers() []string {
	registryInit()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// IsWeakHash reports whether name identifies a hasher that is not
// collision-resistant by modern standards. SHA-1 is kept in the registry
// for legacy-input compatibility per the design notes, but callers
// selecting it should heed the warning surfaced on Tree.Warnings.
func IsWeakHash(name string) bool {
	return name == "sha1"
}

func newBlake2b512() hash.Hash {
	h, err := blake2b.New512(nil)
	if err != nil {
		// blake2b.New512 only errors on a too-long key; we pass none.
		panic(err)
	}
	return h
}

func newBlake2s256() hash.Hash {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// leafDigest computes H(domain_leaf || payload) using a freshly
// constructed hasher instance from d.
func leafDigest(d Descriptor, payload []byte) Hash {
	h := d.New()
	h.Write([]byte{domainLeaf})
	h.Write(payload)
	return Hash(h.Sum(nil))
}

// interiorDigest computes H(domain_interior || left || right).
func interiorDigest(d Descriptor, left, right Hash) Hash {
	h := d.New()
	h.Write([]byte{domainInterior})
	h.Write(left)
	h.Write(right)
	return Hash(h.Sum(nil))
}
