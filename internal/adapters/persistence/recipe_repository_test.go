package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KungRaseri/forgecraft/internal/adapters/persistence"
	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/test/helpers"
)

func TestRecipeRepository_SaveAndFindAll(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRecipeRepository(db)

	metalReq, err := material.NewRequirement(material.CategoryMetal, material.QualityUncommon, 2)
	require.NoError(t, err)
	gemReq, err := material.NewSpecificRequirement(material.CategoryGem, material.QualityRare, 1, "flawless-ruby")
	require.NoError(t, err)

	rcp, err := recipe.NewRecipe("ruby_ring", "Ruby Ring", "A dazzling band",
		recipe.CategoryTrinket,
		[]material.Requirement{metalReq, gemReq},
		recipe.Result{ItemID: "ruby_ring_item", Name: "Ruby Ring", QualityCap: material.QualityEpic},
		90*time.Second)
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), rcp, true))

	stored, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	found := stored[0].Recipe
	assert.True(t, stored[0].Unlocked)
	assert.Equal(t, "ruby_ring", found.ID())
	assert.Equal(t, "Ruby Ring", found.Name())
	assert.Equal(t, "A dazzling band", found.Description())
	assert.Equal(t, recipe.CategoryTrinket, found.Category())
	assert.Equal(t, 90*time.Second, found.CraftingTime())
	assert.Equal(t, material.QualityEpic, found.Result().QualityCap)

	reqs := found.Requirements()
	require.Len(t, reqs, 2)
	assert.Equal(t, material.CategoryMetal, reqs[0].Category())
	assert.Equal(t, material.QualityUncommon, reqs[0].MinimumQuality())
	assert.Equal(t, 2, reqs[0].Quantity())
	assert.Equal(t, "flawless-ruby", reqs[1].SpecificMaterialID())
}

func TestRecipeRepository_SaveUpserts(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRecipeRepository(db)

	first := helpers.NewSimpleRecipe(t, "widget", time.Minute)
	require.NoError(t, repo.Save(context.Background(), first, false))

	second := helpers.NewSimpleRecipe(t, "widget", 2*time.Minute)
	require.NoError(t, repo.Save(context.Background(), second, true))

	stored, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 2*time.Minute, stored[0].Recipe.CraftingTime())
	assert.True(t, stored[0].Unlocked)
}

func TestRecipeRepository_SetUnlocked(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRecipeRepository(db)

	rcp := helpers.NewSimpleRecipe(t, "widget", time.Minute)
	require.NoError(t, repo.Save(context.Background(), rcp, false))

	require.NoError(t, repo.SetUnlocked(context.Background(), "widget", true))

	stored, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Unlocked)

	err = repo.SetUnlocked(context.Background(), "missing", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipe not found")
}

func TestRecipeRepository_Delete(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRecipeRepository(db)

	rcp := helpers.NewSimpleRecipe(t, "widget", time.Minute)
	require.NoError(t, repo.Save(context.Background(), rcp, false))

	require.NoError(t, repo.Delete(context.Background(), "widget"))

	stored, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}
