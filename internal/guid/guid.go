// Package guid generates GnuCash-style object identifiers.
//
// GnuCash stores GUIDs as 32 lowercase hex characters: a random UUID with
// the dashes removed. Every row written to a book (accounts, commodities,
// the book itself) is keyed by one.
package guid

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// Length is the number of characters in a GnuCash GUID.
const Length = 32

// New returns a fresh GUID.
func New() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Valid reports whether s looks like a GnuCash GUID (32 lowercase hex).
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}
