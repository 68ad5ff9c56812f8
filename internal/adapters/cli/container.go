package cli

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/KungRaseri/forgecraft/internal/adapters/persistence"
	appcrafting "github.com/KungRaseri/forgecraft/internal/application/crafting"
	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/application/setup"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
	"github.com/KungRaseri/forgecraft/internal/infrastructure/config"
	"github.com/KungRaseri/forgecraft/internal/infrastructure/database"
)

const commandTimeout = 10 * time.Second

// appContainer wires the catalog, station, repositories and mediator for a
// single CLI invocation. State is rebuilt from the database each time.
type appContainer struct {
	cfg      *config.Config
	db       *gorm.DB
	catalog  *recipe.Catalog
	station  *crafting.Station
	mediator common.Mediator
	logger   common.Logger
}

// newAppContainer builds a fully wired application container
func newAppContainer() (*appContainer, error) {
	cfg := config.LoadConfigOrDefault(configPath)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	clock := shared.NewRealClock()
	bus := appcrafting.NewEventBus()

	catalog := recipe.NewCatalog(bus)
	recipeRepo := persistence.NewGormRecipeRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	stored, err := recipeRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe catalog: %w", err)
	}
	for _, entry := range stored {
		if err := catalog.AddRecipe(entry.Recipe, entry.Unlocked); err != nil {
			return nil, fmt.Errorf("failed to restore recipe %s: %w", entry.Recipe.ID(), err)
		}
	}

	orderRepo := persistence.NewGormOrderRepository(db, catalog, clock)

	seed := cfg.Station.RollSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	station := crafting.NewStation(catalog, bus, crafting.NewRoller(seed), clock)

	open, err := orderRepo.FindOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load open orders: %w", err)
	}
	for _, order := range open {
		if err := station.Resume(order); err != nil {
			return nil, fmt.Errorf("failed to resume order %s: %w", order.ID(), err)
		}
	}

	mediator := common.NewMediator()
	registry := setup.NewHandlerRegistry(catalog, station, recipeRepo, orderRepo)
	if err := registry.RegisterAll(mediator); err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}

	return &appContainer{
		cfg:      cfg,
		db:       db,
		catalog:  catalog,
		station:  station,
		mediator: mediator,
		logger:   common.NewStdLogger(logLevel),
	}, nil
}

// send dispatches a request through the mediator with a bounded context
func (c *appContainer) send(request common.Request) (common.Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	ctx = common.WithLogger(ctx, c.logger)
	return c.mediator.Send(ctx, request)
}

// Close releases the database connection
func (c *appContainer) Close() {
	if c.db != nil {
		_ = database.Close(c.db)
	}
}
