package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/KungRaseri/forgecraft/internal/adapters/metrics"
	"github.com/KungRaseri/forgecraft/internal/adapters/persistence"
	appcrafting "github.com/KungRaseri/forgecraft/internal/application/crafting"
	craftingCommands "github.com/KungRaseri/forgecraft/internal/application/crafting/commands"
	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/application/setup"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
	"github.com/KungRaseri/forgecraft/internal/infrastructure/catalogfile"
	"github.com/KungRaseri/forgecraft/internal/infrastructure/config"
	"github.com/KungRaseri/forgecraft/internal/infrastructure/database"
	"github.com/KungRaseri/forgecraft/internal/infrastructure/pidfile"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	fmt.Println("ForgeCraft Daemon v0.1.0")
	fmt.Println("========================")

	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := common.NewStdLogger(cfg.Logging.Level)

	// A second daemon would resume and tick the same open orders, so refuse
	// to start while another instance holds the PID file.
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Station.PIDFile)
	pf := pidfile.New(cfg.Station.PIDFile)
	if err := pf.Acquire(); err != nil {
		return fmt.Errorf("failed to acquire PID file lock: %w", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			logger.Log("WARN", "failed to release PID file", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 1. Database
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database connected")

	// 2. Metrics
	var stationCollector *metrics.StationCollector
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		stationCollector = metrics.NewStationCollector()
		if err := stationCollector.Register(); err != nil {
			return fmt.Errorf("failed to register station metrics: %w", err)
		}
		startMetricsServer(cfg.Metrics)
		fmt.Printf("Metrics served at http://%s%s\n", cfg.Metrics.Address, cfg.Metrics.Path)
	}

	// 3. Event bus and domain wiring
	clock := shared.NewRealClock()
	bus := appcrafting.NewEventBus()

	var publisher crafting.EventPublisher = bus
	if stationCollector != nil {
		publisher = appcrafting.CombinePublishers(bus, stationCollector)
	}

	catalog := recipe.NewCatalog(bus)
	recipeRepo := persistence.NewGormRecipeRepository(db)
	if err := restoreCatalog(ctx, catalog, recipeRepo, cfg.Station.CatalogFile); err != nil {
		return err
	}
	fmt.Printf("Catalog ready with %d recipes\n", catalog.Count())

	orderRepo := persistence.NewGormOrderRepository(db, catalog, clock)

	seed := cfg.Station.RollSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	station := crafting.NewStation(catalog, publisher, crafting.NewRoller(seed), clock)

	if err := resumeOrders(ctx, station, orderRepo); err != nil {
		return err
	}

	// 4. Mediator
	mediator := common.NewMediator()
	if metrics.IsEnabled() {
		commandMetrics := metrics.NewCommandMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		mediator.Use(commandMetrics.Middleware())
	}

	registry := setup.NewHandlerRegistry(catalog, station, recipeRepo, orderRepo)
	if err := registry.RegisterAll(mediator); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	go logStationEvents(ctx, bus, logger)

	fmt.Printf("Ticking every %s. Press Ctrl+C to stop.\n", cfg.Station.TickInterval)
	return tickLoop(ctx, mediator, logger, cfg.Station.TickInterval)
}

// restoreCatalog loads persisted recipes and, optionally, seeds new ones from
// a catalog file
func restoreCatalog(ctx context.Context, catalog *recipe.Catalog, repo recipe.Repository, catalogFile string) error {
	stored, err := repo.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipe catalog: %w", err)
	}
	for _, entry := range stored {
		if err := catalog.AddRecipe(entry.Recipe, entry.Unlocked); err != nil {
			return fmt.Errorf("failed to restore recipe %s: %w", entry.Recipe.ID(), err)
		}
	}

	if catalogFile == "" {
		return nil
	}

	loaded, err := catalogfile.Load(catalogFile)
	if err != nil {
		return err
	}
	added := 0
	for _, entry := range loaded {
		// Persisted state wins over the seed file
		if _, exists := catalog.GetRecipe(entry.Recipe.ID()); exists {
			continue
		}
		if err := catalog.AddRecipe(entry.Recipe, entry.Unlocked); err != nil {
			return fmt.Errorf("failed to add recipe %s: %w", entry.Recipe.ID(), err)
		}
		if err := repo.Save(ctx, entry.Recipe, entry.Unlocked); err != nil {
			return fmt.Errorf("failed to persist recipe %s: %w", entry.Recipe.ID(), err)
		}
		added++
	}
	if added > 0 {
		fmt.Printf("Seeded %d recipes from %s\n", added, catalogFile)
	}
	return nil
}

// resumeOrders restores open orders into the station after a restart
func resumeOrders(ctx context.Context, station *crafting.Station, repo crafting.OrderRepository) error {
	open, err := repo.FindOpen(ctx)
	if err != nil {
		return fmt.Errorf("failed to load open orders: %w", err)
	}
	for _, order := range open {
		if err := station.Resume(order); err != nil {
			return fmt.Errorf("failed to resume order %s: %w", order.ID(), err)
		}
	}
	if len(open) > 0 {
		fmt.Printf("Resumed %d open orders\n", len(open))
	}
	return nil
}

// startMetricsServer exposes the Prometheus registry over HTTP
func startMetricsServer(cfg config.MetricsConfig) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(cfg.Address, mux); err != nil {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()
}

// tickLoop drives the station until the context is cancelled. Wall-clock
// elapsed time is fed into each tick so slow iterations do not lose progress.
func tickLoop(ctx context.Context, mediator common.Mediator, logger common.Logger, interval time.Duration) error {
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	last := time.Now()

	for {
		if err := limiter.Wait(ctx); err != nil {
			fmt.Println("Shutting down...")
			return nil
		}

		now := time.Now()
		elapsed := now.Sub(last)
		last = now

		if _, err := mediator.Send(common.WithLogger(ctx, logger), &craftingCommands.TickCommand{Elapsed: elapsed}); err != nil {
			logger.Log("ERROR", "tick failed", map[string]interface{}{"error": err.Error()})
		}
	}
}

// logStationEvents writes completion, failure and discovery events to the log
func logStationEvents(ctx context.Context, bus *appcrafting.EventBus, logger common.Logger) {
	completed := bus.SubscribeCraftingCompleted()
	failed := bus.SubscribeCraftingFailed()
	unlocked := bus.SubscribeRecipeUnlocked()
	defer bus.UnsubscribeCraftingCompleted(completed)
	defer bus.UnsubscribeCraftingFailed(failed)
	defer bus.UnsubscribeRecipeUnlocked(unlocked)

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-completed:
			logger.Log("INFO", "order completed", map[string]interface{}{
				"order":    event.OrderID,
				"recipe":   event.RecipeID,
				"quality":  event.FinalQuality.String(),
				"duration": event.Duration.String(),
			})
		case event := <-failed:
			logger.Log("WARN", "order failed", map[string]interface{}{
				"order":  event.OrderID,
				"recipe": event.RecipeID,
				"reason": event.Reason,
			})
		case event := <-unlocked:
			logger.Log("INFO", "recipe unlocked", map[string]interface{}{
				"recipe":     event.RecipeID,
				"discovered": event.Discovered,
			})
		}
	}
}
