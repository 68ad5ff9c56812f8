package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateOrderID creates a standardized, human-readable crafting order ID.
// Format: craft-{recipeID}-{8charHexUUID}
//
// Example:
//   - Input: recipeID="steel_sword"
//   - Output: "craft-steel_sword-a3f8e2b1"
//
// The UUID suffix keeps IDs globally unique while the recipe prefix keeps
// logs and CLI output readable.
func GenerateOrderID(recipeID string) string {
	return "craft-" + recipeID + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID.
// This provides sufficient uniqueness while keeping IDs compact.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
