package crafting

import (
	"time"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
)

// CraftingStartedEvent is published when an order transitions to InProgress
type CraftingStartedEvent struct {
	OrderID   string
	RecipeID  string
	StartedAt time.Time
}

// CraftingProgressEvent is published after each progress advance on the
// active order
type CraftingProgressEvent struct {
	OrderID  string
	RecipeID string
	Progress float64
}

// CraftingCompletedEvent is published when an order resolves successfully
type CraftingCompletedEvent struct {
	OrderID      string
	RecipeID     string
	ItemID       string
	FinalQuality material.Quality
	Duration     time.Duration
}

// CraftingFailedEvent is published when an order's crafting roll fails
type CraftingFailedEvent struct {
	OrderID  string
	RecipeID string
	Reason   string
}

// CraftingCancelledEvent is published when an order is cancelled, whether it
// was active or still queued
type CraftingCancelledEvent struct {
	OrderID  string
	RecipeID string
}
