package uuidx

import "github.com/google/uuid"

// New generates a version 7 UUID. It panics if the random source fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewString generates a version 7 UUID and returns its string form.
func NewString() string {
	return New().String()
}
