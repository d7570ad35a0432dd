package core

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/koenrh/sentry/utils"
)

// NewID generates a new ULID with the given prefix.
// The format is: prefix_ULID
// Example: core.NewID("req") returns "req_01G0EZ1XTM37C5X11SQTDNCTM1"
func NewID(prefix string) string {
	utils.AssertInvariant(prefix != "" && strings.TrimSpace(prefix) != "", "prefix cannot be empty")

	entropy := ulid.Monotonic(rand.Reader, 0)
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)

	return strings.ToLower(strings.TrimSpace(prefix)) + "_" + id.String()
}

// IsValidULID checks if the given string is a valid ULID format with prefix.
// The format should be: prefix_ULID where ULID is 26 characters, base32 encoded.
func IsValidULID(id string) bool {
	prefix, ulidPart, ok := strings.Cut(id, "_")
	if !ok || prefix == "" || strings.Contains(ulidPart, "_") {
		return false
	}

	for _, r := range prefix {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	if len(ulidPart) != 26 {
		return false
	}

	// Crockford base32, uppercase only (no I, L, O, U)
	for _, r := range ulidPart {
		if !((r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z' && r != 'I' && r != 'L' && r != 'O' && r != 'U')) {
			return false
		}
	}

	_, err := ulid.Parse(ulidPart)
	return err == nil
}

// IsValidIDWithPrefix reports whether id is a valid ULID id minted with the given prefix.
func IsValidIDWithPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"_") && IsValidULID(id)
}
