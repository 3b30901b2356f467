// Package mrkle implements a hash-agnostic Merkle tree: deterministic
// construction from an ordered sequence of leaf payloads, single- and
// multi-leaf inclusion proofs, and a portable binary codec for both.
//
// The tree domain-separates leaf and interior hashing (H(0x00 || payload)
// vs H(0x01 || left || right)) so a leaf digest can never be replayed as
// an interior digest, and pairs an odd trailing node with itself rather
// than padding with a zero leaf, matching the convention used by Bitcoin
// and Certificate Transparency Merkle trees.
//
// Concrete hash algorithms are selected by name through HasherByName, or
// supplied directly as a Descriptor for static dispatch. Nothing in this
// package performs I/O, logging, or concurrency on the caller's behalf;
// every exported type is safe for read-only concurrent use once built.
package mrkle
