package terms

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash returns the lowercase hex SHA-256 digest of the UTF-8 bytes of blob.
//
// The result is 64 characters long and identical on every platform, so it can
// be compared with a hash computed by the server or by another client.
func Hash(blob string) string {
	sum := sha256.Sum256([]byte(blob))
	return hex.EncodeToString(sum[:])
}

// HasTerms reports whether blob carries any terms at all. Empty and
// whitespace-only text means "no terms".
func HasTerms(blob string) bool {
	return strings.TrimSpace(blob) != ""
}
