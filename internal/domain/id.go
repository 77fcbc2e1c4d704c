package domain

import "github.com/google/uuid"

// generateID returns a unique identifier for one countdown run.
func generateID() string {
	return uuid.New().String()
}
