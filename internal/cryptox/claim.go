package cryptox

import (
	"fmt"
	"time"
)

// timestampLayout is ISO-8601 UTC with microsecond precision and a literal
// trailing Z, matching every timestamp already persisted by this system.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp returns the current UTC time in the persisted wire format.
func Timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// CanonicalClaim builds the exact string that gets signed to bind a content
// fingerprint, registration timestamp, and owner together. Field order and
// the colon separator are fixed: signatures created by one instance must
// verify under another.
func CanonicalClaim(contentHash, createdAt, ownerID string) string {
	return fmt.Sprintf("%s:%s:%s", contentHash, createdAt, ownerID)
}
