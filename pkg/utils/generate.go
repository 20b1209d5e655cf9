package utils

import (
	"fmt"

	"github.com/google/uuid"
)

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// SpotUID builds the human-readable spot label for the n-th spot of a lot.
// Format: <prefix>-<n>, e.g. A-1, A-2.
func SpotUID(prefix string, n int) string {
	if prefix == "" {
		prefix = "A"
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}
