package queries

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// SearchRecipesQuery finds recipes by a case-insensitive term against name
// and description. An empty term matches all. Results are restricted to
// unlocked recipes unless IncludeLocked is set, then optionally filtered by
// category (empty means no filter).
type SearchRecipesQuery struct {
	Term          string
	IncludeLocked bool
	Category      recipe.Category
}

// SearchRecipesResponse lists the matching recipes sorted by name
type SearchRecipesResponse struct {
	Recipes []*recipe.Recipe
}

// SearchRecipesHandler handles SearchRecipesQuery
type SearchRecipesHandler struct {
	catalog *recipe.Catalog
}

// NewSearchRecipesHandler creates a new search recipes handler
func NewSearchRecipesHandler(catalog *recipe.Catalog) *SearchRecipesHandler {
	return &SearchRecipesHandler{catalog: catalog}
}

// Handle executes the search recipes query
func (h *SearchRecipesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*SearchRecipesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SearchRecipesQuery")
	}

	return &SearchRecipesResponse{
		Recipes: h.catalog.Search(query.Term, query.IncludeLocked, query.Category),
	}, nil
}
