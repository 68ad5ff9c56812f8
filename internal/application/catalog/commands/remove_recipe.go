package commands

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// RemoveRecipeCommand deletes a recipe from the catalog
type RemoveRecipeCommand struct {
	RecipeID string
}

// RemoveRecipeResponse reports whether a recipe was actually removed
type RemoveRecipeResponse struct {
	Removed bool
}

// RemoveRecipeHandler handles RemoveRecipeCommand
type RemoveRecipeHandler struct {
	catalog *recipe.Catalog
	repo    recipe.Repository
}

// NewRemoveRecipeHandler creates a new remove recipe handler
func NewRemoveRecipeHandler(catalog *recipe.Catalog, repo recipe.Repository) *RemoveRecipeHandler {
	return &RemoveRecipeHandler{catalog: catalog, repo: repo}
}

// Handle executes the remove recipe command
func (h *RemoveRecipeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RemoveRecipeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemoveRecipeCommand")
	}

	removed := h.catalog.RemoveRecipe(cmd.RecipeID)
	if removed && h.repo != nil {
		if err := h.repo.Delete(ctx, cmd.RecipeID); err != nil {
			return nil, fmt.Errorf("failed to delete recipe %s: %w", cmd.RecipeID, err)
		}
	}

	return &RemoveRecipeResponse{Removed: removed}, nil
}
