package crafting_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
	"github.com/KungRaseri/forgecraft/test/helpers"
)

// newStation builds a station over a catalog with the unlocked steel_sword
// recipe and a roll that always succeeds
func newStation(t *testing.T, roller crafting.Roller) (*crafting.Station, *recipe.Catalog) {
	t.Helper()

	catalog := recipe.NewCatalog(nil)
	require.NoError(t, catalog.AddRecipe(helpers.NewSteelSwordRecipe(t), true))

	clock := shared.NewMockClock(testEpoch)
	if roller == nil {
		roller = &crafting.FixedRoller{Value: 0}
	}
	return crafting.NewStation(catalog, nil, roller, clock), catalog
}

func commonMetals() []material.Instance {
	return helpers.MetalAt(material.QualityCommon, 3)
}

func TestStation_QueueOrderStartsImmediatelyWhenIdle(t *testing.T) {
	station, _ := newStation(t, nil)

	orderID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	order, ok := station.GetOrder(orderID)
	require.True(t, ok)
	assert.Equal(t, crafting.StatusInProgress, order.Status())
	assert.Equal(t, 0.0, order.Progress())

	active, queued := station.Orders()
	require.NotNil(t, active)
	assert.Equal(t, orderID, active.ID())
	assert.Empty(t, queued)
}

func TestStation_QueueOrderRejectsUnknownRecipe(t *testing.T) {
	station, _ := newStation(t, nil)

	_, err := station.QueueOrder("missing", commonMetals())

	var notFound *recipe.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "missing", notFound.RecipeID)
}

func TestStation_QueueOrderRejectsLockedRecipe(t *testing.T) {
	station, catalog := newStation(t, nil)
	require.True(t, catalog.LockRecipe("steel_sword"))

	_, err := station.QueueOrder("steel_sword", commonMetals())

	var locked *recipe.LockedError
	assert.True(t, errors.As(err, &locked))
}

func TestStation_QueueOrderRejectsInsufficientMaterials(t *testing.T) {
	station, _ := newStation(t, nil)

	_, err := station.QueueOrder("steel_sword", helpers.MetalAt(material.QualityCommon, 1))

	var insufficient *crafting.InsufficientMaterialsError
	require.True(t, errors.As(err, &insufficient))

	// No trace left behind
	active, queued := station.Orders()
	assert.Nil(t, active)
	assert.Empty(t, queued)
}

func TestStation_SecondOrderQueuesBehindActive(t *testing.T) {
	station, _ := newStation(t, nil)

	firstID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	secondID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	second, ok := station.GetOrder(secondID)
	require.True(t, ok)
	assert.Equal(t, crafting.StatusQueued, second.Status())

	active, queued := station.Orders()
	assert.Equal(t, firstID, active.ID())
	require.Len(t, queued, 1)
	assert.Equal(t, secondID, queued[0].ID())
}

func TestStation_RoundTripCompletesAfterFullTick(t *testing.T) {
	station, _ := newStation(t, &crafting.FixedRoller{Value: 0})

	orderID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	require.NoError(t, station.Tick(45*time.Second))

	order, ok := station.GetOrder(orderID)
	require.True(t, ok)
	assert.Equal(t, crafting.StatusCompleted, order.Status())
	assert.Equal(t, 1.0, order.Progress())
	assert.NotNil(t, order.FinalQuality())
}

func TestStation_PartialTickAdvancesProgress(t *testing.T) {
	station, _ := newStation(t, nil)

	orderID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	require.NoError(t, station.Tick(9*time.Second))

	order, _ := station.GetOrder(orderID)
	assert.Equal(t, crafting.StatusInProgress, order.Status())
	assert.InDelta(t, 0.2, order.Progress(), 0.001)
}

func TestStation_TickRejectsNegativeElapsed(t *testing.T) {
	station, _ := newStation(t, nil)
	assert.Error(t, station.Tick(-time.Second))
}

func TestStation_TickIdleIsNoOp(t *testing.T) {
	station, _ := newStation(t, nil)
	assert.NoError(t, station.Tick(time.Minute))
}

func TestStation_FailedRollFailsOrder(t *testing.T) {
	// 99.5 always loses against a sub-99 success rate
	station, _ := newStation(t, &crafting.FixedRoller{Value: 99.5})

	orderID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	require.NoError(t, station.Tick(45*time.Second))

	order, _ := station.GetOrder(orderID)
	assert.Equal(t, crafting.StatusFailed, order.Status())
	assert.Contains(t, order.FailureReason(), "crafting roll failed")
	assert.Nil(t, order.FinalQuality())
}

func TestStation_FinalQualityScalesWithRollMargin(t *testing.T) {
	// Roll 0 against a ~93.5% rate: margin ~93.5 → three tiers above the
	// Common baseline, capped at the recipe's Epic result cap
	station, _ := newStation(t, &crafting.FixedRoller{Value: 0})

	orderID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	require.NoError(t, station.Tick(45*time.Second))

	order, _ := station.GetOrder(orderID)
	require.NotNil(t, order.FinalQuality())
	assert.Equal(t, material.QualityEpic, *order.FinalQuality())
}

func TestStation_NarrowSuccessYieldsBaselineQuality(t *testing.T) {
	// Roll just under the rate: margin < 25 keeps the baseline tier
	station, _ := newStation(t, &crafting.FixedRoller{Value: 93})

	orderID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	require.NoError(t, station.Tick(45*time.Second))

	order, _ := station.GetOrder(orderID)
	require.Equal(t, crafting.StatusCompleted, order.Status())
	assert.Equal(t, material.QualityCommon, *order.FinalQuality())
}

func TestStation_FIFOPromotion(t *testing.T) {
	station, _ := newStation(t, &crafting.FixedRoller{Value: 0})

	idA, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	idB, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	idC, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	// Finish A: B becomes active, C stays queued
	require.NoError(t, station.Tick(45*time.Second))

	orderA, _ := station.GetOrder(idA)
	assert.True(t, orderA.Status().IsTerminal())

	active, queued := station.Orders()
	require.NotNil(t, active)
	assert.Equal(t, idB, active.ID())
	require.Len(t, queued, 1)
	assert.Equal(t, idC, queued[0].ID())
}

func TestStation_SingleActivityInvariant(t *testing.T) {
	station, _ := newStation(t, &crafting.FixedRoller{Value: 0})

	var ids []string
	for i := 0; i < 4; i++ {
		id, err := station.QueueOrder("steel_sword", commonMetals())
		require.NoError(t, err)
		ids = append(ids, id)
	}

	countInProgress := func() int {
		n := 0
		for _, id := range ids {
			order, _ := station.GetOrder(id)
			if order.Status() == crafting.StatusInProgress {
				n++
			}
		}
		return n
	}

	assert.Equal(t, 1, countInProgress())
	for i := 0; i < 4; i++ {
		require.NoError(t, station.Tick(45*time.Second))
		assert.LessOrEqual(t, countInProgress(), 1)
	}
	assert.Equal(t, 0, countInProgress())
}

func TestStation_CancelActivePromotesNext(t *testing.T) {
	station, _ := newStation(t, nil)

	idA, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	idB, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	assert.True(t, station.CancelOrder(idA))

	orderA, _ := station.GetOrder(idA)
	assert.Equal(t, crafting.StatusCancelled, orderA.Status())

	active, _ := station.Orders()
	require.NotNil(t, active)
	assert.Equal(t, idB, active.ID())
}

func TestStation_CancelQueuedRemovesFromQueue(t *testing.T) {
	station, _ := newStation(t, nil)

	idA, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	idB, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	assert.True(t, station.CancelOrder(idB))

	active, queued := station.Orders()
	assert.Equal(t, idA, active.ID())
	assert.Empty(t, queued)
}

func TestStation_CancelUnknownOrTerminal(t *testing.T) {
	station, _ := newStation(t, &crafting.FixedRoller{Value: 0})

	assert.False(t, station.CancelOrder("missing"))

	orderID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	require.NoError(t, station.Tick(45*time.Second))

	assert.False(t, station.CancelOrder(orderID), "completed orders cannot be cancelled")
}

func TestStation_CancelAllOrders(t *testing.T) {
	station, _ := newStation(t, nil)

	for i := 0; i < 3; i++ {
		_, err := station.QueueOrder("steel_sword", commonMetals())
		require.NoError(t, err)
	}

	station.CancelAllOrders()

	active, queued := station.Orders()
	assert.Nil(t, active)
	assert.Empty(t, queued)
	assert.Equal(t, 3, station.Stats()["orders_cancelled"])
}

func TestStation_Stats(t *testing.T) {
	catalog := recipe.NewCatalog(nil)
	require.NoError(t, catalog.AddRecipe(helpers.NewSteelSwordRecipe(t), true))
	clock := shared.NewMockClock(testEpoch)
	station := crafting.NewStation(catalog, nil, &crafting.FixedRoller{Value: 0}, clock)

	_, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	queuedID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	require.NoError(t, station.Tick(45*time.Second))

	stats := station.Stats()
	assert.Equal(t, 1, stats["total_orders_processed"])
	assert.Equal(t, 1, stats["orders_succeeded"])
	assert.Equal(t, 0, stats["orders_failed"])
	assert.Equal(t, 0, stats["orders_cancelled"])
	assert.InDelta(t, 45.0, stats["average_completion_seconds"].(float64), 0.001)
	assert.Equal(t, 0, stats["queue_depth"])
	assert.Equal(t, queuedID, stats["active_order_id"])
}

func TestStation_StatsAverageUsesWallClockTime(t *testing.T) {
	catalog := recipe.NewCatalog(nil)
	require.NoError(t, catalog.AddRecipe(helpers.NewSteelSwordRecipe(t), true))
	clock := shared.NewMockClock(testEpoch)
	station := crafting.NewStation(catalog, nil, &crafting.FixedRoller{Value: 0}, clock)

	_, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)

	// The order sits idle for 5 seconds before the tick finishes it, so the
	// queued-to-completed span is longer than the nominal crafting time.
	clock.Advance(50 * time.Second)
	require.NoError(t, station.Tick(45*time.Second))

	stats := station.Stats()
	assert.InDelta(t, 50.0, stats["average_completion_seconds"].(float64), 0.001)
}

func TestStation_Reset(t *testing.T) {
	station, _ := newStation(t, &crafting.FixedRoller{Value: 0})

	orderID, err := station.QueueOrder("steel_sword", commonMetals())
	require.NoError(t, err)
	require.NoError(t, station.Tick(45*time.Second))

	station.Reset()

	_, ok := station.GetOrder(orderID)
	assert.False(t, ok)
	stats := station.Stats()
	assert.Equal(t, 0, stats["total_orders_processed"])
	assert.Equal(t, "", stats["active_order_id"])
}

func TestStation_ResumeRestoresActiveAndQueued(t *testing.T) {
	station, catalog := newStation(t, &crafting.FixedRoller{Value: 0})
	rcp, _ := catalog.GetRecipe("steel_sword")
	clock := shared.NewMockClock(testEpoch)

	active, err := crafting.NewOrder("craft-active", rcp, commonMetals(), clock)
	require.NoError(t, err)
	require.NoError(t, active.Start())
	require.NoError(t, active.UpdateProgress(0.5))

	queued, err := crafting.NewOrder("craft-queued", rcp, commonMetals(), clock)
	require.NoError(t, err)

	require.NoError(t, station.Resume(active))
	require.NoError(t, station.Resume(queued))

	current, pending := station.Orders()
	assert.Equal(t, "craft-active", current.ID())
	require.Len(t, pending, 1)
	assert.Equal(t, "craft-queued", pending[0].ID())

	// The remaining half of the crafting window finishes the resumed order
	require.NoError(t, station.Tick(23*time.Second))
	resumed, _ := station.GetOrder("craft-active")
	assert.True(t, resumed.Status().IsTerminal())
}

func TestStation_ResumeRejectsSecondActive(t *testing.T) {
	station, catalog := newStation(t, nil)
	rcp, _ := catalog.GetRecipe("steel_sword")

	first, err := crafting.NewOrder("craft-1", rcp, commonMetals(), nil)
	require.NoError(t, err)
	require.NoError(t, first.Start())
	second, err := crafting.NewOrder("craft-2", rcp, commonMetals(), nil)
	require.NoError(t, err)
	require.NoError(t, second.Start())

	require.NoError(t, station.Resume(first))
	assert.Error(t, station.Resume(second))
}
