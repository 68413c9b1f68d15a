package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key derives a cache key from its parts. Parts are NUL-separated so that
// ("ab", "c") and ("a", "bc") hash differently.
// Returns the full 64-character hex string.
func Key(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
