package textnorm

import (
	"fmt"
	"hash/fnv"
)

// Fingerprint is the compact identity key for a unit of text:
// "{normalized length}:{fnv1a-32 as 8 hex digits}". Two texts with equal
// fingerprints are treated as identical for verification purposes; the
// length discriminant keeps accidental collisions between unrelated short
// strings negligible without a cryptographic hash. This is an integrity
// check against pipeline bugs, not an adversarial setting.
type Fingerprint string

// EmptyFingerprint marks text that normalizes to nothing. An intentionally
// blanked paragraph is a valid state, not an error.
const EmptyFingerprint Fingerprint = "empty"

// ComputeFingerprint normalizes raw and derives its Fingerprint. Pure and
// total: identical normalized input always yields an identical key, and
// empty-after-normalization input yields EmptyFingerprint.
func ComputeFingerprint(raw string) Fingerprint {
	normalized := Normalize(raw)
	if normalized == "" {
		return EmptyFingerprint
	}
	h := fnv.New32a()
	h.Write([]byte(normalized))
	return Fingerprint(fmt.Sprintf("%d:%08x", len(normalized), h.Sum32()))
}
