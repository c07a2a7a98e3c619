package id

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
// Public identifier for users, submissions, workers and scan records.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// NewSessionToken returns an opaque 64-char lowercase hex token:
// 16 random bytes plus a v4 UUID, so the token stays unguessable even if
// one entropy source degrades.
func NewSessionToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	u := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex.EncodeToString(b) + u
}
