package recipe

import (
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/domain/shared"
)

// NotFoundError indicates an unknown recipe ID
type NotFoundError struct {
	*shared.DomainError
	RecipeID string
}

func NewNotFoundError(recipeID string) *NotFoundError {
	return &NotFoundError{
		DomainError: shared.NewDomainError(fmt.Sprintf("recipe not found: %s", recipeID)),
		RecipeID:    recipeID,
	}
}

// LockedError indicates an operation against a recipe the player has not
// unlocked yet
type LockedError struct {
	*shared.DomainError
	RecipeID string
}

func NewLockedError(recipeID string) *LockedError {
	return &LockedError{
		DomainError: shared.NewDomainError(fmt.Sprintf("recipe is locked: %s", recipeID)),
		RecipeID:    recipeID,
	}
}
