package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// NewSteelSwordRecipe builds the canonical test recipe: three common-or-better
// metal pieces, 45 seconds of crafting time, epic quality cap.
func NewSteelSwordRecipe(t *testing.T) *recipe.Recipe {
	t.Helper()

	req, err := material.NewRequirement(material.CategoryMetal, material.QualityCommon, 3)
	if err != nil {
		t.Fatalf("failed to build requirement: %v", err)
	}

	rcp, err := recipe.NewRecipe(
		"steel_sword",
		"Steel Sword",
		"A dependable blade",
		recipe.CategoryWeapon,
		[]material.Requirement{req},
		recipe.Result{ItemID: "steel_sword_item", Name: "Steel Sword", QualityCap: material.QualityEpic},
		45*time.Second,
	)
	if err != nil {
		t.Fatalf("failed to build recipe: %v", err)
	}
	return rcp
}

// NewSimpleRecipe builds a one-requirement recipe with the given ID and
// crafting time, requiring a single common metal piece
func NewSimpleRecipe(t *testing.T, id string, craftingTime time.Duration) *recipe.Recipe {
	t.Helper()

	req, err := material.NewRequirement(material.CategoryMetal, material.QualityCommon, 1)
	if err != nil {
		t.Fatalf("failed to build requirement: %v", err)
	}

	rcp, err := recipe.NewRecipe(
		id,
		"Recipe "+id,
		"",
		recipe.CategoryTool,
		[]material.Requirement{req},
		recipe.Result{ItemID: id + "_item", Name: "Item " + id, QualityCap: material.QualityLegendary},
		craftingTime,
	)
	if err != nil {
		t.Fatalf("failed to build recipe: %v", err)
	}
	return rcp
}

// MetalAt builds n metal instances at the given quality
func MetalAt(quality material.Quality, n int) []material.Instance {
	instances := make([]material.Instance, n)
	for i := range instances {
		instances[i] = material.Instance{
			ID:       fmt.Sprintf("metal-%d", i),
			Category: material.CategoryMetal,
			Quality:  quality,
		}
	}
	return instances
}
