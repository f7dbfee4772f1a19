package project

import "github.com/google/uuid"

// NewID returns a new time-ordered UUIDv7 identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to a random UUIDv4 if the clock based generation fails.
		return uuid.NewString()
	}
	return id.String()
}

// IsValidID reports whether s is a well formed UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
