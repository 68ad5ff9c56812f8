package queries

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// GetUnlockedByCategoryQuery lists the unlocked recipes in one category
type GetUnlockedByCategoryQuery struct {
	Category recipe.Category
}

// GetUnlockedByCategoryResponse lists the unlocked recipes sorted by name
type GetUnlockedByCategoryResponse struct {
	Recipes []*recipe.Recipe
}

// GetUnlockedByCategoryHandler handles GetUnlockedByCategoryQuery
type GetUnlockedByCategoryHandler struct {
	catalog *recipe.Catalog
}

// NewGetUnlockedByCategoryHandler creates a new handler
func NewGetUnlockedByCategoryHandler(catalog *recipe.Catalog) *GetUnlockedByCategoryHandler {
	return &GetUnlockedByCategoryHandler{catalog: catalog}
}

// Handle executes the query
func (h *GetUnlockedByCategoryHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetUnlockedByCategoryQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetUnlockedByCategoryQuery")
	}

	return &GetUnlockedByCategoryResponse{
		Recipes: h.catalog.UnlockedByCategory(query.Category),
	}, nil
}
