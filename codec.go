package mrkle

import "encoding/binary"

// TreeSnapshot is the decoded form of the optional tree-snapshot wire
// format: enough to inspect or re-verify a tree's shape without rebuilding
// a live Tree (which would additionally require re-deriving parent/child
// index relations the snapshot format deliberately omits to stay compact).
type TreeSnapshot struct {
	HasherName string
	LeafCount  int
	Digests    []Hash
}

const (
	snapshotMagic   = "MRKL"
	snapshotVersion = uint16(1)
)

// Encode serializes a Hash, *Proof, *MultiProof or *Tree into the
// canonical binary wire format described in SPEC_FULL.md §4.5. It is the
// only dependency-free encoding this package guarantees; see the cbor
// build tag for an alternate structured format.
func Encode(v any) ([]byte, error) {
	switch val := v.(type) {
	case Hash:
		return append([]byte(nil), val...), nil
	case *Proof:
		return encodeProof(val), nil
	case *MultiProof:
		return encodeMultiProof(val), nil
	case *Tree:
		return encodeTreeSnapshot(val), nil
	default:
		return nil, &SerdeError{Kind: "unsupported_type"}
	}
}

// Decode parses the canonical binary wire format into *Hash, *Proof,
// *MultiProof or *TreeSnapshot. It never panics on truncated or malformed
// input; every failure comes back as a *SerdeError.
func Decode(b []byte, v any) error {
	switch val := v.(type) {
	case *Hash:
		*val = append([]byte(nil), b...)
		return nil
	case *Proof:
		return decodeProof(b, val)
	case *MultiProof:
		return decodeMultiProof(b, val)
	case *TreeSnapshot:
		return decodeTreeSnapshot(b, val)
	default:
		return &SerdeError{Kind: "unsupported_type"}
	}
}

func encodeProof(p *Proof) []byte {
	buf := make([]byte, 8+4)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(p.LeafIndex))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(p.Siblings)))
	for _, s := range p.Siblings {
		buf = append(buf, byte(s.Side))
		buf = append(buf, s.Hash...)
	}
	return buf
}

func decodeProof(b []byte, out *Proof) error {
	if len(b) < 12 {
		return errTruncated(12, len(b))
	}
	leafIndex := binary.LittleEndian.Uint64(b[0:8])
	depth := binary.LittleEndian.Uint32(b[8:12])
	rest := b[12:]

	if depth == 0 {
		if len(rest) != 0 {
			return errSizeMismatch(0, len(rest))
		}
		out.LeafIndex = int(leafIndex)
		out.Siblings = nil
		return nil
	}

	// Every (side, hash) record shares the same hash width (the digest
	// size of whatever hasher produced the proof); the layout carries no
	// explicit width field, so it is recovered from the total length.
	unit := len(rest) / int(depth)
	if unit < 2 || len(rest)%int(depth) != 0 {
		return errSizeMismatch(len(rest), int(depth)*unit)
	}

	siblings := make([]Sibling, 0, depth)
	for i := uint32(0); i < depth; i++ {
		side := Side(rest[0])
		hashBuf := rest[1:unit]
		siblings = append(siblings, Sibling{Side: side, Hash: NewHash(hashBuf)})
		rest = rest[unit:]
	}

	out.LeafIndex = int(leafIndex)
	out.Siblings = siblings
	return nil
}

func encodeMultiProof(mp *MultiProof) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(len(mp.LeafIndices)))
	for _, i := range mp.LeafIndices {
		idxBuf := make([]byte, 8)
		binary.LittleEndian.PutUint64(idxBuf, uint64(i))
		buf = append(buf, idxBuf...)
	}
	for _, h := range mp.LeafHashes {
		buf = append(buf, h...)
	}
	dBuf := make([]byte, 8)
	binary.LittleEndian.PutUint64(dBuf, uint64(len(mp.Decisions)))
	buf = append(buf, dBuf...)
	for _, h := range mp.Decisions {
		buf = append(buf, h...)
	}
	return buf
}

// decodeMultiProof cannot recover leaf/decision hash widths from the byte
// stream alone (the wire format carries no per-field length prefix for
// Hash, by design — see SPEC_FULL.md §4.5). Callers must set out.LeafCount
// out of band; this decoder infers the width by trying ascending candidate
// widths until k leaf hashes, the 8-byte decision count d and d decision
// hashes exactly fill the remaining payload.
func decodeMultiProof(b []byte, out *MultiProof) error {
	if len(b) < 8 {
		return errTruncated(8, len(b))
	}
	k := binary.LittleEndian.Uint64(b[0:8])
	rest := b[8:]

	if k > uint64(len(rest))/8 {
		return errTruncated(int(k*8), len(rest))
	}
	indices := make([]int, k)
	for i := uint64(0); i < k; i++ {
		indices[i] = int(binary.LittleEndian.Uint64(rest[i*8 : i*8+8]))
	}
	rest = rest[k*8:]

	if len(rest) < 8 {
		return errTruncated(8, len(rest))
	}

	// Try every hash width candidate consistent with the remaining
	// length: leafBytes(k*w) + 8 (d-count) + decisionBytes(d*w) == len(rest).
	for w := 1; w <= len(rest); w++ {
		if uint64(w)*k > uint64(len(rest)) {
			break
		}
		afterLeaves := rest[uint64(w)*k:]
		if len(afterLeaves) < 8 {
			continue
		}
		d := binary.LittleEndian.Uint64(afterLeaves[0:8])
		decisionsBuf := afterLeaves[8:]
		if d > uint64(len(decisionsBuf))/uint64(w) || uint64(len(decisionsBuf)) != d*uint64(w) {
			continue
		}

		leafHashes := make([]Hash, k)
		for i := uint64(0); i < k; i++ {
			leafHashes[i] = NewHash(rest[i*uint64(w) : (i+1)*uint64(w)])
		}
		decisions := make([]Hash, d)
		for i := uint64(0); i < d; i++ {
			decisions[i] = NewHash(decisionsBuf[i*uint64(w) : (i+1)*uint64(w)])
		}

		out.LeafIndices = indices
		out.LeafHashes = leafHashes
		out.Decisions = decisions
		return nil
	}
	return errSizeMismatch(0, len(rest))
}

func encodeTreeSnapshot(t *Tree) []byte {
	name := t.descriptor.Name
	buf := make([]byte, 0, 4+2+2+len(name)+8)
	buf = append(buf, snapshotMagic...)
	verBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(verBuf, snapshotVersion)
	buf = append(buf, verBuf...)
	nameLenBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(nameLenBuf, uint16(len(name)))
	buf = append(buf, nameLenBuf...)
	buf = append(buf, name...)
	leafCountBuf := make([]byte, 8)
	binary.LittleEndian.PutUint64(leafCountBuf, uint64(t.Len()))
	buf = append(buf, leafCountBuf...)
	for _, h := range t.LevelOrder() {
		buf = append(buf, h...)
	}
	return buf
}

func decodeTreeSnapshot(b []byte, out *TreeSnapshot) error {
	if len(b) < 4 {
		return errTruncated(4, len(b))
	}
	if string(b[0:4]) != snapshotMagic {
		return &SerdeError{Kind: "bad_magic"}
	}
	b = b[4:]

	if len(b) < 2 {
		return errTruncated(2, len(b))
	}
	version := binary.LittleEndian.Uint16(b[0:2])
	if version != snapshotVersion {
		return &SerdeError{Kind: "unknown_version"}
	}
	b = b[2:]

	if len(b) < 2 {
		return errTruncated(2, len(b))
	}
	nameLen := binary.LittleEndian.Uint16(b[0:2])
	b = b[2:]
	if len(b) < int(nameLen) {
		return errTruncated(int(nameLen), len(b))
	}
	name := string(b[:nameLen])
	b = b[nameLen:]

	desc, err := HasherByName(name)
	if err != nil {
		return &SerdeError{Kind: "unknown_hasher"}
	}

	if len(b) < 8 {
		return errTruncated(8, len(b))
	}
	leafCount := binary.LittleEndian.Uint64(b[0:8])
	b = b[8:]
	if leafCount > uint64(len(b)/desc.DigestSize) {
		return errSizeMismatch(0, len(b))
	}

	sizes := levelSizes(int(leafCount))
	totalNodes := 0
	for _, s := range sizes {
		totalNodes += s
	}
	want := totalNodes * desc.DigestSize
	if len(b) != want {
		return errSizeMismatch(want, len(b))
	}

	digests := make([]Hash, totalNodes)
	for i := 0; i < totalNodes; i++ {
		digests[i] = NewHash(b[i*desc.DigestSize : (i+1)*desc.DigestSize])
	}

	out.HasherName = name
	out.LeafCount = int(leafCount)
	out.Digests = digests
	return nil
}
