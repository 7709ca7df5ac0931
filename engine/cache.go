package engine

import (
	"crypto/sha256"
	"encoding/hex"

	"namecheck/comparison"
)

// cacheKey derives a stable cache key from the normalized name pair and the
// serving model version, so a model swap naturally invalidates old entries.
// The result is sha256(normalized1 + "|" + normalized2 + "|" + version).
func cacheKey(name1, name2, version string) string {
	combined := comparison.Normalize(name1) + "|" + comparison.Normalize(name2) + "|" + version
	h := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(h[:])
}
