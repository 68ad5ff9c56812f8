package commands

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// LockRecipeCommand locks a recipe again. Locking an already locked recipe
// is a no-op reported via Changed=false.
type LockRecipeCommand struct {
	RecipeID string
}

// LockRecipeResponse reports whether the lock changed catalog state
type LockRecipeResponse struct {
	Changed bool
}

// LockRecipeHandler handles LockRecipeCommand
type LockRecipeHandler struct {
	catalog *recipe.Catalog
	repo    recipe.Repository
}

// NewLockRecipeHandler creates a new lock recipe handler
func NewLockRecipeHandler(catalog *recipe.Catalog, repo recipe.Repository) *LockRecipeHandler {
	return &LockRecipeHandler{catalog: catalog, repo: repo}
}

// Handle executes the lock recipe command
func (h *LockRecipeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*LockRecipeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *LockRecipeCommand")
	}

	changed := h.catalog.LockRecipe(cmd.RecipeID)
	if changed && h.repo != nil {
		if err := h.repo.SetUnlocked(ctx, cmd.RecipeID, false); err != nil {
			return nil, fmt.Errorf("failed to persist lock of %s: %w", cmd.RecipeID, err)
		}
	}

	return &LockRecipeResponse{Changed: changed}, nil
}
