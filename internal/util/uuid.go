package util

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// ShortUUID generates a short UUID with 22 symbols
func ShortUUID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:]) // 22 symbols
}

// NewTrackingID generates an externally visible tracking identifier.
// Uppercase hex keeps it readable on labels and in support tickets.
func NewTrackingID() string {
	u := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(u.String(), "-", ""))
	return "PKG-" + hex[:12]
}
