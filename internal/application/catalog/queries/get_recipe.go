package queries

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// GetRecipeQuery looks up one recipe by ID
type GetRecipeQuery struct {
	RecipeID string
}

// GetRecipeResponse carries the recipe (nil when not found) and its unlock
// state
type GetRecipeResponse struct {
	Recipe   *recipe.Recipe
	Found    bool
	Unlocked bool
}

// GetRecipeHandler handles GetRecipeQuery
type GetRecipeHandler struct {
	catalog *recipe.Catalog
}

// NewGetRecipeHandler creates a new get recipe handler
func NewGetRecipeHandler(catalog *recipe.Catalog) *GetRecipeHandler {
	return &GetRecipeHandler{catalog: catalog}
}

// Handle executes the get recipe query
func (h *GetRecipeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetRecipeQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetRecipeQuery")
	}

	rcp, found := h.catalog.GetRecipe(query.RecipeID)
	return &GetRecipeResponse{
		Recipe:   rcp,
		Found:    found,
		Unlocked: found && h.catalog.IsRecipeUnlocked(query.RecipeID),
	}, nil
}
