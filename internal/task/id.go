package task

import (
	"strings"

	"github.com/google/uuid"
)

const shortIDLength = 8

// NewID returns a random UUID for a new task.
func NewID() string {
	return uuid.NewString()
}

// ShortID returns the display prefix of an ID.
func ShortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

// MatchesRef reports whether ref is the full ID or a prefix of it.
// Hyphens are ignored so "1b9d6bcd" and "1b9d-6bcd" resolve the same way.
func MatchesRef(id, ref string) bool {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return false
	}
	if id == ref {
		return true
	}
	compactID := strings.ReplaceAll(strings.ToLower(id), "-", "")
	compactRef := strings.ReplaceAll(ref, "-", "")
	return compactRef != "" && strings.HasPrefix(compactID, compactRef)
}
