package steps

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
)

var stationEpoch = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// craftingStationContext holds state for crafting station scenarios. Orders
// are addressed by scenario-local aliases so features read naturally.
type craftingStationContext struct {
	catalog     *recipe.Catalog
	clock       *shared.MockClock
	roller      *crafting.FixedRoller
	station     *crafting.Station
	orderIDs    map[string]string
	lastOrderID string
	lastErr     error
	nextMatID   int
}

func (csc *craftingStationContext) reset() {
	csc.catalog = recipe.NewCatalog(nil)
	csc.clock = shared.NewMockClock(stationEpoch)
	csc.roller = &crafting.FixedRoller{Value: 0}
	csc.station = crafting.NewStation(csc.catalog, nil, csc.roller, csc.clock)
	csc.orderIDs = make(map[string]string)
	csc.lastOrderID = ""
	csc.lastErr = nil
	csc.nextMatID = 0
}

func (csc *craftingStationContext) lookupOrder(alias string) (*crafting.Order, error) {
	id, ok := csc.orderIDs[alias]
	if !ok {
		id = csc.lastOrderID
	}
	order, found := csc.station.GetOrder(id)
	if !found {
		return nil, fmt.Errorf("order %q not found on the station", alias)
	}
	return order, nil
}

func (csc *craftingStationContext) materials(count int, category, quality string) ([]material.Instance, error) {
	matCat, err := material.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	tier, err := material.ParseQuality(quality)
	if err != nil {
		return nil, err
	}
	instances := make([]material.Instance, count)
	for i := range instances {
		instances[i] = material.Instance{
			ID:       fmt.Sprintf("mat-%d", csc.nextMatID),
			Category: matCat,
			Quality:  tier,
		}
		csc.nextMatID++
	}
	return instances, nil
}

// ============================================================================
// Given steps
// ============================================================================

func (csc *craftingStationContext) aCraftingStation() error {
	return nil
}

func (csc *craftingStationContext) everyCraftingRollFails() error {
	csc.roller.Value = 99.5
	return nil
}

func (csc *craftingStationContext) anUnlockedRecipeRequiringMaterialsTakingSeconds(id string, count int, category, quality string, seconds int) error {
	return csc.addStationRecipe(id, count, category, quality, seconds, true)
}

func (csc *craftingStationContext) aLockedRecipeRequiringMaterialsTakingSeconds(id string, count int, category, quality string, seconds int) error {
	return csc.addStationRecipe(id, count, category, quality, seconds, false)
}

func (csc *craftingStationContext) addStationRecipe(id string, count int, category, quality string, seconds int, unlocked bool) error {
	matCat, err := material.ParseCategory(category)
	if err != nil {
		return err
	}
	tier, err := material.ParseQuality(quality)
	if err != nil {
		return err
	}
	req, err := material.NewRequirement(matCat, tier, count)
	if err != nil {
		return err
	}
	rcp, err := recipe.NewRecipe(id, id, "", recipe.CategoryTool,
		[]material.Requirement{req},
		recipe.Result{ItemID: id + "_item", Name: id, QualityCap: material.QualityLegendary},
		time.Duration(seconds)*time.Second,
	)
	if err != nil {
		return err
	}
	return csc.catalog.AddRecipe(rcp, unlocked)
}

// ============================================================================
// When steps
// ============================================================================

func (csc *craftingStationContext) iQueueAnOrderForWithMaterials(recipeID string, count int, category, quality string) error {
	instances, err := csc.materials(count, category, quality)
	if err != nil {
		return err
	}
	csc.lastOrderID, csc.lastErr = csc.station.QueueOrder(recipeID, instances)
	return nil
}

func (csc *craftingStationContext) iQueueAnOrderForWithMaterialsAs(recipeID string, count int, category, quality, alias string) error {
	if err := csc.iQueueAnOrderForWithMaterials(recipeID, count, category, quality); err != nil {
		return err
	}
	if csc.lastErr != nil {
		return fmt.Errorf("queueing order %q failed: %w", alias, csc.lastErr)
	}
	csc.orderIDs[alias] = csc.lastOrderID
	return nil
}

func (csc *craftingStationContext) theStationTicksSeconds(seconds int) error {
	elapsed := time.Duration(seconds) * time.Second
	csc.clock.Advance(elapsed)
	return csc.station.Tick(elapsed)
}

func (csc *craftingStationContext) iCancelOrder(alias string) error {
	id, ok := csc.orderIDs[alias]
	if !ok {
		id = csc.lastOrderID
	}
	csc.station.CancelOrder(id)
	return nil
}

func (csc *craftingStationContext) iCancelAllOrders() error {
	csc.station.CancelAllOrders()
	return nil
}

// ============================================================================
// Then steps
// ============================================================================

func (csc *craftingStationContext) theOrderShouldStartImmediately() error {
	order, err := csc.lookupOrder("")
	if err != nil {
		return err
	}
	if order.Status() != crafting.StatusInProgress {
		return fmt.Errorf("expected the order to be IN_PROGRESS, got %s", order.Status())
	}
	return nil
}

func (csc *craftingStationContext) orderShouldHaveStatus(alias, status string) error {
	order, err := csc.lookupOrder(alias)
	if err != nil {
		return err
	}
	if string(order.Status()) != status {
		return fmt.Errorf("expected order %q status %s, got %s", alias, status, order.Status())
	}
	return nil
}

func (csc *craftingStationContext) theOrderStatusShouldBe(status string) error {
	return csc.orderShouldHaveStatus("", status)
}

func (csc *craftingStationContext) orderShouldBeTheActiveOrder(alias string) error {
	active, _ := csc.station.Orders()
	if active == nil {
		return fmt.Errorf("expected order %q to be active, but the station is idle", alias)
	}
	if want := csc.orderIDs[alias]; active.ID() != want {
		return fmt.Errorf("expected order %q (%s) to be active, got %s", alias, want, active.ID())
	}
	return nil
}

func (csc *craftingStationContext) theStationShouldHaveNoActiveOrder() error {
	active, _ := csc.station.Orders()
	if active != nil {
		return fmt.Errorf("expected an idle station, but order %s is active", active.ID())
	}
	return nil
}

func (csc *craftingStationContext) theQueueDepthShouldBe(depth int) error {
	_, queued := csc.station.Orders()
	if len(queued) != depth {
		return fmt.Errorf("expected queue depth %d, got %d", depth, len(queued))
	}
	return nil
}

func (csc *craftingStationContext) theOrderProgressShouldBePercent(percent int) error {
	order, err := csc.lookupOrder("")
	if err != nil {
		return err
	}
	want := float64(percent) / 100.0
	if math.Abs(order.Progress()-want) > 1e-9 {
		return fmt.Errorf("expected progress %.2f, got %.4f", want, order.Progress())
	}
	return nil
}

func (csc *craftingStationContext) theFinalQualityShouldBe(quality string) error {
	order, err := csc.lookupOrder("")
	if err != nil {
		return err
	}
	if order.FinalQuality() == nil {
		return fmt.Errorf("expected a final quality, got none")
	}
	if order.FinalQuality().String() != quality {
		return fmt.Errorf("expected final quality %s, got %s", quality, order.FinalQuality())
	}
	return nil
}

func (csc *craftingStationContext) theFailureReasonShouldMention(fragment string) error {
	order, err := csc.lookupOrder("")
	if err != nil {
		return err
	}
	if !strings.Contains(order.FailureReason(), fragment) {
		return fmt.Errorf("expected failure reason to mention %q, got %q", fragment, order.FailureReason())
	}
	return nil
}

func (csc *craftingStationContext) theQueueAttemptShouldBeRejectedForInsufficientMaterials() error {
	var insufficient *crafting.InsufficientMaterialsError
	if !errors.As(csc.lastErr, &insufficient) {
		return fmt.Errorf("expected an insufficient materials rejection, got %v", csc.lastErr)
	}
	return nil
}

func (csc *craftingStationContext) theQueueAttemptShouldBeRejectedBecauseTheRecipeIsLocked() error {
	var locked *recipe.LockedError
	if !errors.As(csc.lastErr, &locked) {
		return fmt.Errorf("expected a locked recipe rejection, got %v", csc.lastErr)
	}
	return nil
}

func (csc *craftingStationContext) theStationStatShouldBe(key string, value int) error {
	stats := csc.station.Stats()
	got, ok := stats[key]
	if !ok {
		return fmt.Errorf("unknown station stat %q", key)
	}
	if fmt.Sprintf("%v", got) != fmt.Sprintf("%v", value) {
		return fmt.Errorf("expected stat %s to be %d, got %v", key, value, got)
	}
	return nil
}

func InitializeCraftingStationScenario(sc *godog.ScenarioContext) {
	csc := &craftingStationContext{}

	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		csc.reset()
		return ctx, nil
	})

	sc.Step(`^a crafting station$`, csc.aCraftingStation)
	sc.Step(`^every crafting roll fails$`, csc.everyCraftingRollFails)
	sc.Step(`^an unlocked recipe "([^"]*)" requiring (\d+) "([^"]*)" materials of at least "([^"]*)" quality taking (\d+) seconds$`, csc.anUnlockedRecipeRequiringMaterialsTakingSeconds)
	sc.Step(`^a locked recipe "([^"]*)" requiring (\d+) "([^"]*)" materials of at least "([^"]*)" quality taking (\d+) seconds$`, csc.aLockedRecipeRequiringMaterialsTakingSeconds)

	sc.Step(`^I queue an order for "([^"]*)" with (\d+) "([^"]*)" materials of "([^"]*)" quality$`, csc.iQueueAnOrderForWithMaterials)
	sc.Step(`^I queue an order for "([^"]*)" with (\d+) "([^"]*)" materials of "([^"]*)" quality as "([^"]*)"$`, csc.iQueueAnOrderForWithMaterialsAs)
	sc.Step(`^the station ticks (\d+) seconds$`, csc.theStationTicksSeconds)
	sc.Step(`^I cancel order "([^"]*)"$`, csc.iCancelOrder)
	sc.Step(`^I cancel all orders$`, csc.iCancelAllOrders)

	sc.Step(`^the order should start immediately$`, csc.theOrderShouldStartImmediately)
	sc.Step(`^the order status should be "([^"]*)"$`, csc.theOrderStatusShouldBe)
	sc.Step(`^order "([^"]*)" should have status "([^"]*)"$`, csc.orderShouldHaveStatus)
	sc.Step(`^order "([^"]*)" should be the active order$`, csc.orderShouldBeTheActiveOrder)
	sc.Step(`^the station should have no active order$`, csc.theStationShouldHaveNoActiveOrder)
	sc.Step(`^the queue depth should be (\d+)$`, csc.theQueueDepthShouldBe)
	sc.Step(`^the order progress should be (\d+) percent$`, csc.theOrderProgressShouldBePercent)
	sc.Step(`^the final quality should be "([^"]*)"$`, csc.theFinalQualityShouldBe)
	sc.Step(`^the failure reason should mention "([^"]*)"$`, csc.theFailureReasonShouldMention)
	sc.Step(`^the queue attempt should be rejected for insufficient materials$`, csc.theQueueAttemptShouldBeRejectedForInsufficientMaterials)
	sc.Step(`^the queue attempt should be rejected because the recipe is locked$`, csc.theQueueAttemptShouldBeRejectedBecauseTheRecipeIsLocked)
	sc.Step(`^the station stat "([^"]*)" should be (\d+)$`, csc.theStationStatShouldBe)
}
