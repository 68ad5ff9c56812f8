package recipe_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

func newRecipe(t *testing.T, id string, reqs []material.Requirement, craftingTime time.Duration) *recipe.Recipe {
	t.Helper()
	rcp, err := recipe.NewRecipe(id, "Recipe "+id, "", recipe.CategoryWeapon, reqs,
		recipe.Result{ItemID: id + "_item", Name: "Item", QualityCap: material.QualityLegendary},
		craftingTime)
	require.NoError(t, err)
	return rcp
}

func TestNewRecipe_Validation(t *testing.T) {
	result := recipe.Result{ItemID: "item", Name: "Item", QualityCap: material.QualityEpic}

	_, err := recipe.NewRecipe("", "Name", "", recipe.CategoryWeapon, nil, result, time.Second)
	assert.Error(t, err, "blank id")

	_, err = recipe.NewRecipe("id", "", "", recipe.CategoryWeapon, nil, result, time.Second)
	assert.Error(t, err, "blank name")

	_, err = recipe.NewRecipe("id", "Name", "", recipe.CategoryWeapon, nil, result, 0)
	assert.Error(t, err, "non-positive crafting time")

	_, err = recipe.NewRecipe("id", "Name", "", recipe.CategoryWeapon, nil, recipe.Result{}, time.Second)
	assert.Error(t, err, "blank result item")
}

func TestBaseSuccessRate_SingleRequirement(t *testing.T) {
	req := material.MustRequirement(material.CategoryMetal, material.QualityCommon, 3)
	rcp := newRecipe(t, "steel_sword", []material.Requirement{req}, 45*time.Second)

	// 95 ceiling, no extra-requirement penalty, 1.5 points for 45s
	assert.InDelta(t, 93.5, rcp.BaseSuccessRate(), 0.001)
}

func TestBaseSuccessRate_MoreRequirementsLowerRate(t *testing.T) {
	oneReq := []material.Requirement{
		material.MustRequirement(material.CategoryMetal, material.QualityCommon, 1),
	}
	twoReqs := append(oneReq,
		material.MustRequirement(material.CategoryWood, material.QualityCommon, 1))
	threeReqs := append(twoReqs,
		material.MustRequirement(material.CategoryLeather, material.QualityCommon, 1))

	simple := newRecipe(t, "simple", oneReq, time.Minute)
	medium := newRecipe(t, "medium", twoReqs, time.Minute)
	hard := newRecipe(t, "hard", threeReqs, time.Minute)

	assert.Greater(t, simple.BaseSuccessRate(), medium.BaseSuccessRate())
	assert.Greater(t, medium.BaseSuccessRate(), hard.BaseSuccessRate())
}

func TestBaseSuccessRate_LongerTimeLowerRate(t *testing.T) {
	req := []material.Requirement{
		material.MustRequirement(material.CategoryMetal, material.QualityCommon, 1),
	}

	quick := newRecipe(t, "quick", req, 10*time.Second)
	slow := newRecipe(t, "slow", req, 5*time.Minute)

	assert.Greater(t, quick.BaseSuccessRate(), slow.BaseSuccessRate())
}

func TestBaseSuccessRate_Bounds(t *testing.T) {
	reqs := make([]material.Requirement, 0, 30)
	for i := 0; i < 30; i++ {
		reqs = append(reqs, material.MustRequirement(material.CategoryMetal, material.QualityCommon, 1))
	}
	brutal := newRecipe(t, "brutal", reqs, time.Hour)

	assert.GreaterOrEqual(t, brutal.BaseSuccessRate(), 5.0)
	assert.LessOrEqual(t, brutal.BaseSuccessRate(), 99.0)
}

func TestCanBeSatisfiedBy(t *testing.T) {
	reqs := []material.Requirement{
		material.MustRequirement(material.CategoryMetal, material.QualityUncommon, 2),
		material.MustRequirement(material.CategoryLeather, material.QualityCommon, 1),
	}
	rcp := newRecipe(t, "axe", reqs, time.Minute)

	enough := []material.Instance{
		{Category: material.CategoryMetal, Quality: material.QualityUncommon},
		{Category: material.CategoryMetal, Quality: material.QualityRare},
		{Category: material.CategoryLeather, Quality: material.QualityCommon},
	}
	assert.True(t, rcp.CanBeSatisfiedBy(enough))

	missingLeather := enough[:2]
	assert.False(t, rcp.CanBeSatisfiedBy(missingLeather))

	lowQualityMetal := []material.Instance{
		{Category: material.CategoryMetal, Quality: material.QualityCommon},
		{Category: material.CategoryMetal, Quality: material.QualityCommon},
		{Category: material.CategoryLeather, Quality: material.QualityCommon},
	}
	assert.False(t, rcp.CanBeSatisfiedBy(lowQualityMetal))
}

func TestMatchesSearch(t *testing.T) {
	rcp, err := recipe.NewRecipe("steel_sword", "Steel Sword", "A dependable blade",
		recipe.CategoryWeapon, nil,
		recipe.Result{ItemID: "item", Name: "Steel Sword", QualityCap: material.QualityEpic},
		45*time.Second)
	require.NoError(t, err)

	assert.True(t, rcp.MatchesSearch("sword"))
	assert.True(t, rcp.MatchesSearch("STEEL"))
	assert.True(t, rcp.MatchesSearch("blade"))
	assert.True(t, rcp.MatchesSearch(""))
	assert.False(t, rcp.MatchesSearch("shield"))
}
