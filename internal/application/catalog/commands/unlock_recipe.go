package commands

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// UnlockRecipeCommand makes a recipe craftable. Unlocking an already
// unlocked recipe is a no-op reported via Changed=false.
type UnlockRecipeCommand struct {
	RecipeID string
}

// UnlockRecipeResponse reports whether the unlock changed catalog state
type UnlockRecipeResponse struct {
	Changed bool
}

// UnlockRecipeHandler handles UnlockRecipeCommand
type UnlockRecipeHandler struct {
	catalog *recipe.Catalog
	repo    recipe.Repository
}

// NewUnlockRecipeHandler creates a new unlock recipe handler
func NewUnlockRecipeHandler(catalog *recipe.Catalog, repo recipe.Repository) *UnlockRecipeHandler {
	return &UnlockRecipeHandler{catalog: catalog, repo: repo}
}

// Handle executes the unlock recipe command
func (h *UnlockRecipeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*UnlockRecipeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UnlockRecipeCommand")
	}

	changed := h.catalog.UnlockRecipe(cmd.RecipeID)
	if changed && h.repo != nil {
		if err := h.repo.SetUnlocked(ctx, cmd.RecipeID, true); err != nil {
			return nil, fmt.Errorf("failed to persist unlock of %s: %w", cmd.RecipeID, err)
		}
	}

	return &UnlockRecipeResponse{Changed: changed}, nil
}
