package utils

import "github.com/google/uuid"

// NewSessionID returns a time-ordered id for a sync session. It falls back
// to a random v4 id when the v7 generator fails.
func NewSessionID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
