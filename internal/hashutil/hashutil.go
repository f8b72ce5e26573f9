package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashStrings returns a SHA256 hash of the provided strings with newline separators.
func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// QueryKey identifies a query within scope, typically a database fingerprint.
// Runs of whitespace are collapsed so reformatted catalog text maps to the
// same key.
func QueryKey(scope, query string) string {
	return HashStrings(scope, strings.Join(strings.Fields(query), " "))
}
