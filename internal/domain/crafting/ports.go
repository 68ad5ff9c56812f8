package crafting

import "context"

// EventPublisher broadcasts order-state transitions. The station has no
// knowledge of subscriber identity or count.
type EventPublisher interface {
	PublishCraftingStarted(event CraftingStartedEvent)
	PublishCraftingProgress(event CraftingProgressEvent)
	PublishCraftingCompleted(event CraftingCompletedEvent)
	PublishCraftingFailed(event CraftingFailedEvent)
	PublishCraftingCancelled(event CraftingCancelledEvent)
}

// Roller produces the random roll used to resolve a finished order against
// its success rate. Injected for deterministic tests.
type Roller interface {
	// Roll returns a value in [0, 100)
	Roll() float64
}

// OrderRepository defines the persistence interface for crafting orders
type OrderRepository interface {
	// Save persists an order snapshot (upsert)
	Save(ctx context.Context, order *Order) error

	// FindByID retrieves an order by ID
	FindByID(ctx context.Context, orderID string) (*Order, error)

	// FindOpen retrieves all non-terminal orders in creation order, for
	// resuming station state after a restart
	FindOpen(ctx context.Context) ([]*Order, error)
}

// noopEvents is the fallback when no event publisher is wired
type noopEvents struct{}

func (noopEvents) PublishCraftingStarted(CraftingStartedEvent)     {}
func (noopEvents) PublishCraftingProgress(CraftingProgressEvent)   {}
func (noopEvents) PublishCraftingCompleted(CraftingCompletedEvent) {}
func (noopEvents) PublishCraftingFailed(CraftingFailedEvent)       {}
func (noopEvents) PublishCraftingCancelled(CraftingCancelledEvent) {}
