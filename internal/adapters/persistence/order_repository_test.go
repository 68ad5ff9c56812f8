package persistence_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KungRaseri/forgecraft/internal/adapters/persistence"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
	"github.com/KungRaseri/forgecraft/test/helpers"
)

var orderEpoch = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

// newOrderRepo sets up a populated catalog, a persisted steel_sword recipe
// and an order repository over a fresh in-memory database
func newOrderRepo(t *testing.T, clock shared.Clock) (*persistence.GormOrderRepository, *recipe.Catalog) {
	t.Helper()

	db := helpers.NewTestDB(t)
	catalog := recipe.NewCatalog(nil)
	rcp := helpers.NewSteelSwordRecipe(t)
	require.NoError(t, catalog.AddRecipe(rcp, true))

	recipeRepo := persistence.NewGormRecipeRepository(db)
	require.NoError(t, recipeRepo.Save(context.Background(), rcp, true))

	return persistence.NewGormOrderRepository(db, catalog, clock), catalog
}

func newPersistedOrder(t *testing.T, rcp *recipe.Recipe, id string, clock shared.Clock) *crafting.Order {
	t.Helper()
	order, err := crafting.NewOrder(id, rcp, helpers.MetalAt(material.QualityUncommon, 3), clock)
	require.NoError(t, err)
	return order
}

func TestOrderRepository_SaveAndFindByID(t *testing.T) {
	clock := shared.NewMockClock(orderEpoch)
	repo, catalog := newOrderRepo(t, clock)
	rcp, _ := catalog.GetRecipe("steel_sword")

	order := newPersistedOrder(t, rcp, "craft-steel_sword-1", clock)
	require.NoError(t, order.Start())
	require.NoError(t, order.Complete(material.QualityRare))

	require.NoError(t, repo.Save(context.Background(), order))

	found, err := repo.FindByID(context.Background(), "craft-steel_sword-1")
	require.NoError(t, err)

	assert.Equal(t, order.ID(), found.ID())
	assert.Equal(t, "steel_sword", found.Recipe().ID())
	assert.Equal(t, crafting.StatusCompleted, found.Status())
	assert.Equal(t, 1.0, found.Progress())
	require.NotNil(t, found.FinalQuality())
	assert.Equal(t, material.QualityRare, *found.FinalQuality())
	assert.Len(t, found.Materials(), 3)
}

func TestOrderRepository_FindByIDNotFound(t *testing.T) {
	repo, _ := newOrderRepo(t, nil)

	_, err := repo.FindByID(context.Background(), "missing")

	var notFound *crafting.OrderNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestOrderRepository_FindOpenSkipsTerminalOrders(t *testing.T) {
	clock := shared.NewMockClock(orderEpoch)
	repo, catalog := newOrderRepo(t, clock)
	rcp, _ := catalog.GetRecipe("steel_sword")

	active := newPersistedOrder(t, rcp, "craft-1", clock)
	require.NoError(t, active.Start())

	clock.Advance(time.Second)
	queued := newPersistedOrder(t, rcp, "craft-2", clock)

	clock.Advance(time.Second)
	done := newPersistedOrder(t, rcp, "craft-3", clock)
	require.NoError(t, done.Start())
	require.NoError(t, done.Complete(material.QualityCommon))

	for _, order := range []*crafting.Order{active, queued, done} {
		require.NoError(t, repo.Save(context.Background(), order))
	}

	open, err := repo.FindOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, "craft-1", open[0].ID())
	assert.Equal(t, "craft-2", open[1].ID())
}

func TestOrderRepository_ResumeRecomputesProgress(t *testing.T) {
	clock := shared.NewMockClock(orderEpoch)
	repo, catalog := newOrderRepo(t, clock)
	rcp, _ := catalog.GetRecipe("steel_sword")

	order := newPersistedOrder(t, rcp, "craft-1", clock)
	require.NoError(t, order.Start())
	require.NoError(t, repo.Save(context.Background(), order))

	// 15 of 45 crafting seconds pass while nothing is running
	clock.Advance(15 * time.Second)

	found, err := repo.FindByID(context.Background(), "craft-1")
	require.NoError(t, err)
	assert.Equal(t, crafting.StatusInProgress, found.Status())
	assert.InDelta(t, 1.0/3.0, found.Progress(), 0.001)
}

func TestOrderRepository_UnknownRecipeFailsReconstruction(t *testing.T) {
	repo, catalog := newOrderRepo(t, nil)
	rcp, _ := catalog.GetRecipe("steel_sword")

	order := newPersistedOrder(t, rcp, "craft-1", nil)
	require.NoError(t, repo.Save(context.Background(), order))

	catalog.RemoveRecipe("steel_sword")

	_, err := repo.FindByID(context.Background(), "craft-1")
	assert.Error(t, err)
}
