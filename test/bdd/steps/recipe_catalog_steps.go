package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// recipeCatalogContext holds state for recipe catalog scenarios
type recipeCatalogContext struct {
	catalog       *recipe.Catalog
	searchResults []*recipe.Recipe
	discovered    []*recipe.Recipe
	lastChanged   bool
}

func (rcc *recipeCatalogContext) reset() {
	rcc.catalog = recipe.NewCatalog(nil)
	rcc.searchResults = nil
	rcc.discovered = nil
	rcc.lastChanged = false
}

func (rcc *recipeCatalogContext) addRecipe(id, name, category string, reqCount int, reqCategory, reqQuality string, unlocked bool) error {
	cat, err := recipe.ParseCategory(category)
	if err != nil {
		return err
	}
	matCat, err := material.ParseCategory(reqCategory)
	if err != nil {
		return err
	}
	quality, err := material.ParseQuality(reqQuality)
	if err != nil {
		return err
	}
	req, err := material.NewRequirement(matCat, quality, reqCount)
	if err != nil {
		return err
	}

	rcp, err := recipe.NewRecipe(id, name, "", cat,
		[]material.Requirement{req},
		recipe.Result{ItemID: id + "_item", Name: name, QualityCap: material.QualityLegendary},
		30*time.Second,
	)
	if err != nil {
		return err
	}
	return rcc.catalog.AddRecipe(rcp, unlocked)
}

// ============================================================================
// Given steps
// ============================================================================

func (rcc *recipeCatalogContext) anEmptyRecipeCatalog() error {
	rcc.reset()
	return nil
}

func (rcc *recipeCatalogContext) aLockedRecipeNamedInCategory(id, name, category string) error {
	return rcc.addRecipe(id, name, category, 1, "METAL", "COMMON", false)
}

func (rcc *recipeCatalogContext) anUnlockedRecipeNamedInCategory(id, name, category string) error {
	return rcc.addRecipe(id, name, category, 1, "METAL", "COMMON", true)
}

func (rcc *recipeCatalogContext) aLockedRecipeRequiringMaterials(id string, count int, category, quality string) error {
	return rcc.addRecipe(id, id, "TOOL", count, category, quality, false)
}

// ============================================================================
// When steps
// ============================================================================

func (rcc *recipeCatalogContext) iUnlockRecipe(id string) error {
	rcc.lastChanged = rcc.catalog.UnlockRecipe(id)
	return nil
}

func (rcc *recipeCatalogContext) iLockRecipe(id string) error {
	rcc.lastChanged = rcc.catalog.LockRecipe(id)
	return nil
}

func (rcc *recipeCatalogContext) iSearchTheCatalogFor(term string) error {
	rcc.searchResults = rcc.catalog.Search(term, false, "")
	return nil
}

func (rcc *recipeCatalogContext) iSearchTheCatalogForIncludingLocked(term string) error {
	rcc.searchResults = rcc.catalog.Search(term, true, "")
	return nil
}

func (rcc *recipeCatalogContext) iDiscoverRecipesWithMaterials(count int, category, quality string) error {
	matCat, err := material.ParseCategory(category)
	if err != nil {
		return err
	}
	tier, err := material.ParseQuality(quality)
	if err != nil {
		return err
	}
	available := make([]material.Instance, count)
	for i := range available {
		available[i] = material.Instance{
			ID:       fmt.Sprintf("bag-%d", i),
			Category: matCat,
			Quality:  tier,
		}
	}
	rcc.discovered = rcc.catalog.DiscoverRecipes(available)
	return nil
}

// ============================================================================
// Then steps
// ============================================================================

func (rcc *recipeCatalogContext) theUnlockShouldReportAChange() error {
	if !rcc.lastChanged {
		return fmt.Errorf("expected the unlock state to change, but it did not")
	}
	return nil
}

func (rcc *recipeCatalogContext) theUnlockShouldReportNoChange() error {
	if rcc.lastChanged {
		return fmt.Errorf("expected the unlock state to be unchanged, but it changed")
	}
	return nil
}

func (rcc *recipeCatalogContext) recipeShouldBeUnlocked(id string) error {
	if !rcc.catalog.IsRecipeUnlocked(id) {
		return fmt.Errorf("expected recipe %q to be unlocked", id)
	}
	return nil
}

func (rcc *recipeCatalogContext) recipeShouldBeLocked(id string) error {
	if rcc.catalog.IsRecipeUnlocked(id) {
		return fmt.Errorf("expected recipe %q to be locked", id)
	}
	return nil
}

func (rcc *recipeCatalogContext) theSearchResultsShouldContainRecipes(count int) error {
	if len(rcc.searchResults) != count {
		return fmt.Errorf("expected %d search results, got %d", count, len(rcc.searchResults))
	}
	return nil
}

func (rcc *recipeCatalogContext) theSearchResultsShouldContainOnly(id string) error {
	if len(rcc.searchResults) != 1 {
		return fmt.Errorf("expected exactly one search result, got %d", len(rcc.searchResults))
	}
	if rcc.searchResults[0].ID() != id {
		return fmt.Errorf("expected search result %q, got %q", id, rcc.searchResults[0].ID())
	}
	return nil
}

func (rcc *recipeCatalogContext) theDiscoveredRecipesShouldContainRecipes(count int) error {
	if len(rcc.discovered) != count {
		return fmt.Errorf("expected %d discovered recipes, got %d", count, len(rcc.discovered))
	}
	return nil
}

func (rcc *recipeCatalogContext) recipeShouldBeDiscovered(id string) error {
	for _, rcp := range rcc.discovered {
		if rcp.ID() == id {
			return nil
		}
	}
	return fmt.Errorf("expected recipe %q among the discovered recipes", id)
}

func InitializeRecipeCatalogScenario(sc *godog.ScenarioContext) {
	rcc := &recipeCatalogContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		rcc.reset()
		return ctx, nil
	})

	sc.Step(`^an empty recipe catalog$`, rcc.anEmptyRecipeCatalog)
	sc.Step(`^a locked recipe "([^"]*)" named "([^"]*)" in category "([^"]*)"$`, rcc.aLockedRecipeNamedInCategory)
	sc.Step(`^an unlocked recipe "([^"]*)" named "([^"]*)" in category "([^"]*)"$`, rcc.anUnlockedRecipeNamedInCategory)
	sc.Step(`^a locked recipe "([^"]*)" requiring (\d+) "([^"]*)" materials of at least "([^"]*)" quality$`, rcc.aLockedRecipeRequiringMaterials)

	sc.Step(`^I unlock recipe "([^"]*)"$`, rcc.iUnlockRecipe)
	sc.Step(`^I lock recipe "([^"]*)"$`, rcc.iLockRecipe)
	sc.Step(`^I search the catalog for "([^"]*)"$`, rcc.iSearchTheCatalogFor)
	sc.Step(`^I search the catalog for "([^"]*)" including locked recipes$`, rcc.iSearchTheCatalogForIncludingLocked)
	sc.Step(`^I discover recipes with (\d+) "([^"]*)" materials of "([^"]*)" quality$`, rcc.iDiscoverRecipesWithMaterials)

	sc.Step(`^the unlock should report a change$`, rcc.theUnlockShouldReportAChange)
	sc.Step(`^the unlock should report no change$`, rcc.theUnlockShouldReportNoChange)
	sc.Step(`^recipe "([^"]*)" should be unlocked$`, rcc.recipeShouldBeUnlocked)
	sc.Step(`^recipe "([^"]*)" should be locked$`, rcc.recipeShouldBeLocked)
	sc.Step(`^the search results should contain (\d+) recipes?$`, rcc.theSearchResultsShouldContainRecipes)
	sc.Step(`^the search results should contain only "([^"]*)"$`, rcc.theSearchResultsShouldContainOnly)
	sc.Step(`^the discovered recipes should contain (\d+) recipes?$`, rcc.theDiscoveredRecipesShouldContainRecipes)
	sc.Step(`^recipe "([^"]*)" should be discovered$`, rcc.recipeShouldBeDiscovered)
}
