package store

import "github.com/google/uuid"

// NewID returns a random v4 UUID string used for all record identifiers.
func NewID() string {
	return uuid.NewString()
}
