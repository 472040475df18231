package utils

import "github.com/google/uuid"

// GenerateTaskID returns a new random task identifier.
func GenerateTaskID() string {
	return uuid.NewString()
}
