package commands

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// AddRecipeCommand registers a recipe definition in the catalog. An existing
// recipe with the same ID is overwritten.
type AddRecipeCommand struct {
	Recipe        *recipe.Recipe
	StartUnlocked bool
}

// AddRecipeResponse reports the registered recipe ID
type AddRecipeResponse struct {
	RecipeID string
}

// AddRecipeHandler handles AddRecipeCommand
type AddRecipeHandler struct {
	catalog *recipe.Catalog
	repo    recipe.Repository
}

// NewAddRecipeHandler creates a new add recipe handler. A nil repository
// disables persistence.
func NewAddRecipeHandler(catalog *recipe.Catalog, repo recipe.Repository) *AddRecipeHandler {
	return &AddRecipeHandler{catalog: catalog, repo: repo}
}

// Handle executes the add recipe command
func (h *AddRecipeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*AddRecipeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AddRecipeCommand")
	}

	if err := h.catalog.AddRecipe(cmd.Recipe, cmd.StartUnlocked); err != nil {
		return nil, err
	}

	if h.repo != nil {
		if err := h.repo.Save(ctx, cmd.Recipe, cmd.StartUnlocked); err != nil {
			return nil, fmt.Errorf("failed to persist recipe %s: %w", cmd.Recipe.ID(), err)
		}
	}

	return &AddRecipeResponse{RecipeID: cmd.Recipe.ID()}, nil
}
