package setup

import (
	"reflect"

	catalogCommands "github.com/KungRaseri/forgecraft/internal/application/catalog/commands"
	catalogQueries "github.com/KungRaseri/forgecraft/internal/application/catalog/queries"
	"github.com/KungRaseri/forgecraft/internal/application/common"
	craftingCommands "github.com/KungRaseri/forgecraft/internal/application/crafting/commands"
	craftingQueries "github.com/KungRaseri/forgecraft/internal/application/crafting/queries"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	catalog    *recipe.Catalog
	station    *crafting.Station
	recipeRepo recipe.Repository
	orderRepo  crafting.OrderRepository
}

// NewHandlerRegistry creates a new handler registry. The repositories may be
// nil when persistence is not wired (e.g. in-memory CLI sessions and tests).
func NewHandlerRegistry(
	catalog *recipe.Catalog,
	station *crafting.Station,
	recipeRepo recipe.Repository,
	orderRepo crafting.OrderRepository,
) *HandlerRegistry {
	return &HandlerRegistry{
		catalog:    catalog,
		station:    station,
		recipeRepo: recipeRepo,
		orderRepo:  orderRepo,
	}
}

// RegisterAll registers every catalog and crafting handler with the mediator
func (r *HandlerRegistry) RegisterAll(m common.Mediator) error {
	if err := r.RegisterCatalogHandlers(m); err != nil {
		return err
	}
	return r.RegisterCraftingHandlers(m)
}

// RegisterCatalogHandlers registers catalog command and query handlers:
//   - AddRecipeCommand / RemoveRecipeCommand
//   - UnlockRecipeCommand / LockRecipeCommand
//   - DiscoverRecipesCommand
//   - GetRecipeQuery / SearchRecipesQuery / GetUnlockedByCategoryQuery
func (r *HandlerRegistry) RegisterCatalogHandlers(m common.Mediator) error {
	registrations := []struct {
		request common.Request
		handler common.RequestHandler
	}{
		{&catalogCommands.AddRecipeCommand{}, catalogCommands.NewAddRecipeHandler(r.catalog, r.recipeRepo)},
		{&catalogCommands.RemoveRecipeCommand{}, catalogCommands.NewRemoveRecipeHandler(r.catalog, r.recipeRepo)},
		{&catalogCommands.UnlockRecipeCommand{}, catalogCommands.NewUnlockRecipeHandler(r.catalog, r.recipeRepo)},
		{&catalogCommands.LockRecipeCommand{}, catalogCommands.NewLockRecipeHandler(r.catalog, r.recipeRepo)},
		{&catalogCommands.DiscoverRecipesCommand{}, catalogCommands.NewDiscoverRecipesHandler(r.catalog, r.recipeRepo)},
		{&catalogQueries.GetRecipeQuery{}, catalogQueries.NewGetRecipeHandler(r.catalog)},
		{&catalogQueries.SearchRecipesQuery{}, catalogQueries.NewSearchRecipesHandler(r.catalog)},
		{&catalogQueries.GetUnlockedByCategoryQuery{}, catalogQueries.NewGetUnlockedByCategoryHandler(r.catalog)},
	}

	for _, reg := range registrations {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterCraftingHandlers registers station command and query handlers:
//   - QueueOrderCommand / TickCommand
//   - CancelOrderCommand / CancelAllOrdersCommand
//   - GetOrderQuery / GetAllOrdersQuery / GetStationStatsQuery
func (r *HandlerRegistry) RegisterCraftingHandlers(m common.Mediator) error {
	registrations := []struct {
		request common.Request
		handler common.RequestHandler
	}{
		{&craftingCommands.QueueOrderCommand{}, craftingCommands.NewQueueOrderHandler(r.station, r.orderRepo)},
		{&craftingCommands.TickCommand{}, craftingCommands.NewTickHandler(r.station, r.orderRepo)},
		{&craftingCommands.CancelOrderCommand{}, craftingCommands.NewCancelOrderHandler(r.station, r.orderRepo)},
		{&craftingCommands.CancelAllOrdersCommand{}, craftingCommands.NewCancelAllOrdersHandler(r.station, r.orderRepo)},
		{&craftingQueries.GetOrderQuery{}, craftingQueries.NewGetOrderHandler(r.station)},
		{&craftingQueries.GetAllOrdersQuery{}, craftingQueries.NewGetAllOrdersHandler(r.station)},
		{&craftingQueries.GetStationStatsQuery{}, craftingQueries.NewGetStationStatsHandler(r.station)},
	}

	for _, reg := range registrations {
		if err := m.Register(reflect.TypeOf(reg.request), reg.handler); err != nil {
			return err
		}
	}
	return nil
}
