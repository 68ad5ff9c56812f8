package crafting

import (
	"fmt"
	"sync"
	"time"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
	"github.com/KungRaseri/forgecraft/pkg/utils"
)

// Quality tiers earned per this many points of roll margin when a craft
// succeeds
const marginPerQualityTier = 25.0

// Station is the crafting scheduler: it enforces single-active-order
// execution with FIFO queueing of the remainder, advances the active order
// on each tick, and resolves completion or failure.
//
// The station exposes no internal timer; the host drives Tick with elapsed
// time, which keeps scheduling deterministic and testable. All mutating
// calls are serialized through one mutex, so an order's progress is only
// ever advanced by the single owning tick call.
type Station struct {
	mu      sync.Mutex
	catalog *recipe.Catalog
	active  *Order
	queue   []*Order
	// orders holds every order the station has ever accepted, including
	// terminal ones, keyed by order ID
	orders map[string]*Order

	events EventPublisher
	roller Roller
	clock  shared.Clock

	// resolution counters
	succeeded              int
	failed                 int
	cancelled              int
	totalCompletionSeconds float64
}

// NewStation creates a crafting station bound to a recipe catalog. A nil
// publisher disables events; a nil roller falls back to a time-seeded one;
// a nil clock falls back to the real clock.
func NewStation(catalog *recipe.Catalog, events EventPublisher, roller Roller, clock shared.Clock) *Station {
	if events == nil {
		events = noopEvents{}
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if roller == nil {
		roller = NewRoller(clock.Now().UnixNano())
	}
	return &Station{
		catalog: catalog,
		orders:  make(map[string]*Order),
		events:  events,
		roller:  roller,
		clock:   clock,
	}
}

// QueueOrder validates the recipe and allocation, creates an order, and
// either starts it immediately (when the station is idle) or appends it to
// the pending queue in arrival order. Returns the new order's ID.
//
// Unknown recipes fail with *recipe.NotFoundError, locked recipes with
// *recipe.LockedError, and uncovered requirements with
// *InsufficientMaterialsError; none of these leave any trace in the queue.
func (s *Station) QueueOrder(recipeID string, materials []material.Instance) (string, error) {
	rcp, ok := s.catalog.GetRecipe(recipeID)
	if !ok {
		return "", recipe.NewNotFoundError(recipeID)
	}
	if !s.catalog.IsRecipeUnlocked(recipeID) {
		return "", recipe.NewLockedError(recipeID)
	}

	order, err := NewOrder(utils.GenerateOrderID(recipeID), rcp, materials, s.clock)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID()] = order

	if s.active == nil {
		if err := s.startOrder(order); err != nil {
			delete(s.orders, order.ID())
			return "", err
		}
	} else {
		s.queue = append(s.queue, order)
	}

	return order.ID(), nil
}

// Tick advances the active order by elapsed/craftingTime and resolves the
// outcome once progress reaches 1.0: the success roll is sampled against the
// order's success rate, the final quality is derived from the roll margin,
// and the next pending order (if any) is promoted to active. At most one
// order is resolved per call. A tick with no active order is a no-op.
func (s *Station) Tick(elapsed time.Duration) error {
	if elapsed < 0 {
		return shared.NewValidationError("elapsed", fmt.Sprintf("must not be negative, got %s", elapsed))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil
	}

	order := s.active
	delta := elapsed.Seconds() / order.Recipe().CraftingTime().Seconds()
	if err := order.UpdateProgress(order.Progress() + delta); err != nil {
		return err
	}

	s.events.PublishCraftingProgress(CraftingProgressEvent{
		OrderID:  order.ID(),
		RecipeID: order.Recipe().ID(),
		Progress: order.Progress(),
	})

	if order.Progress() < 1.0 {
		return nil
	}

	if err := s.resolveOrder(order); err != nil {
		return err
	}

	s.active = nil
	return s.promoteNext()
}

// resolveOrder rolls the crafting outcome for a finished order.
// Caller must hold the mutex.
func (s *Station) resolveOrder(order *Order) error {
	rate := order.SuccessRate()
	roll := s.roller.Roll()

	if roll < rate {
		quality := s.finalQuality(order, rate-roll)
		if err := order.Complete(quality); err != nil {
			return err
		}
		s.succeeded++
		duration := order.CompletedAt().Sub(order.CreatedAt())
		s.totalCompletionSeconds += duration.Seconds()
		s.events.PublishCraftingCompleted(CraftingCompletedEvent{
			OrderID:      order.ID(),
			RecipeID:     order.Recipe().ID(),
			ItemID:       order.Recipe().Result().ItemID,
			FinalQuality: quality,
			Duration:     duration,
		})
		return nil
	}

	reason := fmt.Sprintf("crafting roll failed: rolled %.1f against %.1f%% success rate", roll, rate)
	if err := order.Fail(reason); err != nil {
		return err
	}
	s.failed++
	s.events.PublishCraftingFailed(CraftingFailedEvent{
		OrderID:  order.ID(),
		RecipeID: order.Recipe().ID(),
		Reason:   reason,
	})
	return nil
}

// finalQuality maps the margin by which the roll beat the threshold to an
// output tier: the baseline is the highest minimum quality among the
// recipe's requirements, bumped one tier per margin step, capped at the
// recipe result's quality cap.
func (s *Station) finalQuality(order *Order, margin float64) material.Quality {
	base := material.QualityCommon
	for _, req := range order.Recipe().Requirements() {
		if req.MinimumQuality() > base {
			base = req.MinimumQuality()
		}
	}

	tier := base + material.Quality(int(margin/marginPerQualityTier))
	if capTier := order.Recipe().Result().QualityCap; tier > capTier {
		tier = capTier
	}
	return material.ClampQuality(tier)
}

// startOrder starts an order and makes it active. Caller must hold the mutex.
func (s *Station) startOrder(order *Order) error {
	if err := order.Start(); err != nil {
		return err
	}
	s.active = order
	s.events.PublishCraftingStarted(CraftingStartedEvent{
		OrderID:   order.ID(),
		RecipeID:  order.Recipe().ID(),
		StartedAt: *order.StartedAt(),
	})
	return nil
}

// promoteNext dequeues the next pending order and starts it.
// Caller must hold the mutex.
func (s *Station) promoteNext() error {
	if len(s.queue) == 0 {
		return nil
	}

	next := s.queue[0]
	s.queue = s.queue[1:]
	return s.startOrder(next)
}

// CancelOrder cancels the order with the given ID. Cancelling the active
// order promotes the next queued one; cancelling a queued order removes it
// from the queue. Returns false for unknown or already-terminal orders.
func (s *Station) CancelOrder(orderID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil && s.active.ID() == orderID {
		if s.cancelOrder(s.active) {
			s.active = nil
			// Promotion failures cannot happen here: queued orders are
			// always in QUEUED state
			_ = s.promoteNext()
			return true
		}
		return false
	}

	for i, order := range s.queue {
		if order.ID() == orderID {
			if s.cancelOrder(order) {
				s.queue = append(s.queue[:i], s.queue[i+1:]...)
				return true
			}
			return false
		}
	}

	return false
}

// CancelAllOrders cancels the active order and every queued order, then
// clears the queue.
func (s *Station) CancelAllOrders() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		s.cancelOrder(s.active)
		s.active = nil
	}
	for _, order := range s.queue {
		s.cancelOrder(order)
	}
	s.queue = nil
}

// cancelOrder cancels one order and records the event.
// Caller must hold the mutex.
func (s *Station) cancelOrder(order *Order) bool {
	if err := order.Cancel(); err != nil {
		return false
	}
	s.cancelled++
	s.events.PublishCraftingCancelled(CraftingCancelledEvent{
		OrderID:  order.ID(),
		RecipeID: order.Recipe().ID(),
	})
	return true
}

// Reset clears the active order, the queue, and all station history.
// Non-terminal orders are cancelled first.
func (s *Station) Reset() {
	s.CancelAllOrders()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = make(map[string]*Order)
	s.succeeded = 0
	s.failed = 0
	s.cancelled = 0
	s.totalCompletionSeconds = 0
}

// Queries

// GetOrder looks up any order the station has accepted, including terminal
// ones
func (s *Station) GetOrder(orderID string) (*Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[orderID]
	return order, ok
}

// Orders returns the current active order (nil when idle) and a snapshot of
// the pending queue in arrival order
func (s *Station) Orders() (*Order, []*Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queued := make([]*Order, len(s.queue))
	copy(queued, s.queue)
	return s.active, queued
}

// Resume reinstates an order restored from persistence: an IN_PROGRESS order
// becomes the active order (rejected when one already exists), a QUEUED
// order is appended to the queue, and terminal orders are only recorded in
// history.
func (s *Station) Resume(order *Order) error {
	if order == nil {
		return shared.NewValidationError("order", "must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID()] = order

	switch {
	case order.Status() == StatusInProgress:
		if s.active != nil {
			return NewInvalidTransitionError(order.ID(), order.Status(),
				fmt.Sprintf("resume as active while %s is active", s.active.ID()))
		}
		s.active = order
	case order.Status() == StatusQueued:
		s.queue = append(s.queue, order)
	}
	return nil
}

// Stats returns a diagnostic snapshot with stable keys:
// total_orders_processed, orders_succeeded, orders_failed, orders_cancelled,
// average_completion_seconds, queue_depth, active_order_id.
func (s *Station) Stats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	avgCompletion := 0.0
	if s.succeeded > 0 {
		avgCompletion = s.totalCompletionSeconds / float64(s.succeeded)
	}

	activeID := ""
	if s.active != nil {
		activeID = s.active.ID()
	}

	return map[string]interface{}{
		"total_orders_processed":     s.succeeded + s.failed + s.cancelled,
		"orders_succeeded":           s.succeeded,
		"orders_failed":              s.failed,
		"orders_cancelled":           s.cancelled,
		"average_completion_seconds": avgCompletion,
		"queue_depth":                len(s.queue),
		"active_order_id":            activeID,
	}
}
