package commands

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// DiscoverRecipesCommand auto-unlocks every locked recipe whose requirements
// are fully satisfiable by the given bag of materials
type DiscoverRecipesCommand struct {
	AvailableMaterials []material.Instance
}

// DiscoverRecipesResponse lists the newly unlocked recipes
type DiscoverRecipesResponse struct {
	Discovered []*recipe.Recipe
}

// DiscoverRecipesHandler handles DiscoverRecipesCommand
type DiscoverRecipesHandler struct {
	catalog *recipe.Catalog
	repo    recipe.Repository
}

// NewDiscoverRecipesHandler creates a new discover recipes handler
func NewDiscoverRecipesHandler(catalog *recipe.Catalog, repo recipe.Repository) *DiscoverRecipesHandler {
	return &DiscoverRecipesHandler{catalog: catalog, repo: repo}
}

// Handle executes the discover recipes command
func (h *DiscoverRecipesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*DiscoverRecipesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *DiscoverRecipesCommand")
	}

	discovered := h.catalog.DiscoverRecipes(cmd.AvailableMaterials)

	if h.repo != nil {
		for _, rcp := range discovered {
			if err := h.repo.SetUnlocked(ctx, rcp.ID(), true); err != nil {
				return nil, fmt.Errorf("failed to persist discovery of %s: %w", rcp.ID(), err)
			}
		}
	}

	return &DiscoverRecipesResponse{Discovered: discovered}, nil
}
