package recipe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// capturingPublisher records published recipe events for assertions
type capturingPublisher struct {
	unlocked []recipe.UnlockedEvent
	locked   []recipe.LockedEvent
}

func (p *capturingPublisher) PublishRecipeUnlocked(event recipe.UnlockedEvent) {
	p.unlocked = append(p.unlocked, event)
}

func (p *capturingPublisher) PublishRecipeLocked(event recipe.LockedEvent) {
	p.locked = append(p.locked, event)
}

func buildRecipe(t *testing.T, id, name string, category recipe.Category, reqs ...material.Requirement) *recipe.Recipe {
	t.Helper()
	rcp, err := recipe.NewRecipe(id, name, "", category, reqs,
		recipe.Result{ItemID: id + "_item", Name: name, QualityCap: material.QualityLegendary},
		30*time.Second)
	require.NoError(t, err)
	return rcp
}

func TestCatalog_AddAndGet(t *testing.T) {
	catalog := recipe.NewCatalog(nil)
	rcp := buildRecipe(t, "steel_sword", "Steel Sword", recipe.CategoryWeapon)

	require.NoError(t, catalog.AddRecipe(rcp, false))

	found, ok := catalog.GetRecipe("steel_sword")
	require.True(t, ok)
	assert.Equal(t, "Steel Sword", found.Name())
	assert.False(t, catalog.IsRecipeUnlocked("steel_sword"))
	assert.Equal(t, 1, catalog.Count())

	_, ok = catalog.GetRecipe("missing")
	assert.False(t, ok)
}

func TestCatalog_AddRejectsNil(t *testing.T) {
	catalog := recipe.NewCatalog(nil)
	assert.Error(t, catalog.AddRecipe(nil, false))
}

func TestCatalog_AddOverwriteReindexesCategory(t *testing.T) {
	catalog := recipe.NewCatalog(nil)

	asWeapon := buildRecipe(t, "multi_tool", "Multi Tool", recipe.CategoryWeapon)
	require.NoError(t, catalog.AddRecipe(asWeapon, true))

	asTool := buildRecipe(t, "multi_tool", "Multi Tool", recipe.CategoryTool)
	require.NoError(t, catalog.AddRecipe(asTool, true))

	assert.Empty(t, catalog.UnlockedByCategory(recipe.CategoryWeapon))

	tools := catalog.UnlockedByCategory(recipe.CategoryTool)
	require.Len(t, tools, 1)
	assert.Equal(t, "multi_tool", tools[0].ID())
	assert.Equal(t, 1, catalog.Count())
}

func TestCatalog_RemoveRecipe(t *testing.T) {
	catalog := recipe.NewCatalog(nil)
	rcp := buildRecipe(t, "steel_sword", "Steel Sword", recipe.CategoryWeapon)
	require.NoError(t, catalog.AddRecipe(rcp, true))

	assert.True(t, catalog.RemoveRecipe("steel_sword"))
	assert.False(t, catalog.RemoveRecipe("steel_sword"))

	_, ok := catalog.GetRecipe("steel_sword")
	assert.False(t, ok)
	assert.False(t, catalog.IsRecipeUnlocked("steel_sword"))
	assert.Empty(t, catalog.UnlockedByCategory(recipe.CategoryWeapon))
}

func TestCatalog_UnlockIdempotence(t *testing.T) {
	publisher := &capturingPublisher{}
	catalog := recipe.NewCatalog(publisher)
	rcp := buildRecipe(t, "steel_sword", "Steel Sword", recipe.CategoryWeapon)
	require.NoError(t, catalog.AddRecipe(rcp, false))

	assert.True(t, catalog.UnlockRecipe("steel_sword"))
	assert.False(t, catalog.UnlockRecipe("steel_sword"))
	assert.True(t, catalog.IsRecipeUnlocked("steel_sword"))

	// Only the state change publishes
	require.Len(t, publisher.unlocked, 1)
	assert.Equal(t, "steel_sword", publisher.unlocked[0].RecipeID)
	assert.False(t, publisher.unlocked[0].Discovered)
}

func TestCatalog_LockUnknownRecipe(t *testing.T) {
	catalog := recipe.NewCatalog(nil)
	assert.False(t, catalog.UnlockRecipe("missing"))
	assert.False(t, catalog.LockRecipe("missing"))
}

func TestCatalog_LockPublishes(t *testing.T) {
	publisher := &capturingPublisher{}
	catalog := recipe.NewCatalog(publisher)
	rcp := buildRecipe(t, "steel_sword", "Steel Sword", recipe.CategoryWeapon)
	require.NoError(t, catalog.AddRecipe(rcp, true))

	assert.True(t, catalog.LockRecipe("steel_sword"))
	assert.False(t, catalog.LockRecipe("steel_sword"))
	require.Len(t, publisher.locked, 1)
	assert.Equal(t, "steel_sword", publisher.locked[0].RecipeID)
}

func TestCatalog_Search(t *testing.T) {
	catalog := recipe.NewCatalog(nil)
	require.NoError(t, catalog.AddRecipe(buildRecipe(t, "steel_sword", "Steel Sword", recipe.CategoryWeapon), true))
	require.NoError(t, catalog.AddRecipe(buildRecipe(t, "iron_shield", "Iron Shield", recipe.CategoryArmor), true))
	require.NoError(t, catalog.AddRecipe(buildRecipe(t, "dark_blade", "Dark Blade", recipe.CategoryWeapon), false))

	t.Run("substring match", func(t *testing.T) {
		results := catalog.Search("sword", false, "")
		require.Len(t, results, 1)
		assert.Equal(t, "steel_sword", results[0].ID())
	})

	t.Run("locked recipes hidden by default", func(t *testing.T) {
		assert.Empty(t, catalog.Search("blade", false, ""))

		results := catalog.Search("blade", true, "")
		require.Len(t, results, 1)
		assert.Equal(t, "dark_blade", results[0].ID())
	})

	t.Run("category filter", func(t *testing.T) {
		results := catalog.Search("", true, recipe.CategoryWeapon)
		require.Len(t, results, 2)
		assert.Equal(t, "dark_blade", results[0].ID())
		assert.Equal(t, "steel_sword", results[1].ID())
	})

	t.Run("empty term matches all unlocked", func(t *testing.T) {
		results := catalog.Search("", false, "")
		assert.Len(t, results, 2)
	})

	t.Run("near-miss term matches by edit distance", func(t *testing.T) {
		results := catalog.Search("steel sord", false, "")
		require.Len(t, results, 1)
		assert.Equal(t, "steel_sword", results[0].ID())
	})
}

func TestCatalog_DiscoverRecipes(t *testing.T) {
	publisher := &capturingPublisher{}
	catalog := recipe.NewCatalog(publisher)

	metalReq := material.MustRequirement(material.CategoryMetal, material.QualityUncommon, 2)
	gemReq := material.MustRequirement(material.CategoryGem, material.QualityRare, 1)

	require.NoError(t, catalog.AddRecipe(buildRecipe(t, "steel_sword", "Steel Sword", recipe.CategoryWeapon, metalReq), false))
	require.NoError(t, catalog.AddRecipe(buildRecipe(t, "ruby_ring", "Ruby Ring", recipe.CategoryTrinket, gemReq), false))

	available := []material.Instance{
		{Category: material.CategoryMetal, Quality: material.QualityUncommon},
		{Category: material.CategoryMetal, Quality: material.QualityRare},
	}

	discovered := catalog.DiscoverRecipes(available)
	require.Len(t, discovered, 1)
	assert.Equal(t, "steel_sword", discovered[0].ID())
	assert.True(t, catalog.IsRecipeUnlocked("steel_sword"))
	assert.False(t, catalog.IsRecipeUnlocked("ruby_ring"))

	require.Len(t, publisher.unlocked, 1)
	assert.True(t, publisher.unlocked[0].Discovered)

	// Already unlocked recipes are not rediscovered
	assert.Empty(t, catalog.DiscoverRecipes(available))
	assert.Empty(t, catalog.DiscoverRecipes(nil))
}
