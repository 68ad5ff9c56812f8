package catalogfile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/infrastructure/catalogfile"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalogFile(t, `
recipes:
  - id: steel_sword
    name: Steel Sword
    description: A dependable blade
    category: WEAPON
    crafting_seconds: 45
    unlocked: true
    result:
      item_id: steel_sword_item
      quality_cap: EPIC
    requirements:
      - category: METAL
        minimum_quality: COMMON
        quantity: 3
  - id: ruby_ring
    name: Ruby Ring
    category: TRINKET
    crafting_seconds: 90
    result:
      item_id: ruby_ring_item
      name: Band of Rubies
    requirements:
      - category: GEM
        minimum_quality: RARE
        quantity: 1
        material_id: flawless-ruby
`)

	loaded, err := catalogfile.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	sword := loaded[0]
	assert.True(t, sword.Unlocked)
	assert.Equal(t, "steel_sword", sword.Recipe.ID())
	assert.Equal(t, recipe.CategoryWeapon, sword.Recipe.Category())
	assert.Equal(t, 45*time.Second, sword.Recipe.CraftingTime())
	assert.Equal(t, material.QualityEpic, sword.Recipe.Result().QualityCap)
	// Result name falls back to the recipe name
	assert.Equal(t, "Steel Sword", sword.Recipe.Result().Name)
	require.Len(t, sword.Recipe.Requirements(), 1)
	assert.Equal(t, 3, sword.Recipe.Requirements()[0].Quantity())

	ring := loaded[1]
	assert.False(t, ring.Unlocked)
	assert.Equal(t, "Band of Rubies", ring.Recipe.Result().Name)
	// Quality cap defaults to the top tier
	assert.Equal(t, material.QualityLegendary, ring.Recipe.Result().QualityCap)
	require.Len(t, ring.Recipe.Requirements(), 1)
	assert.Equal(t, "flawless-ruby", ring.Recipe.Requirements()[0].SpecificMaterialID())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := catalogfile.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidCategory(t *testing.T) {
	path := writeCatalogFile(t, `
recipes:
  - id: bad
    name: Bad
    category: SPACESHIP
    crafting_seconds: 10
    result:
      item_id: bad_item
`)

	_, err := catalogfile.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}
