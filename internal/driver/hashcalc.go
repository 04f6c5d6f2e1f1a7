package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"sweet/internal/scope"
)

// Digest keys the disk cache.
type Digest [32]byte

// combineDigest: H(content || part1 || part2 ...). Parts are in a fixed order.
func combineDigest(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// unitKey identifies the output of one unit: its source, its script and the
// phase it was reduced at.
func unitKey(content, script Digest, phase scope.Phase) Digest {
	var p Digest
	binary.BigEndian.PutUint64(p[:8], uint64(int64(phase)))
	return combineDigest(content, script, p)
}
