package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
)

// TickCommand advances the station's active order by the given elapsed time.
// The daemon's host loop issues one per interval; tests issue them with
// synthetic durations.
type TickCommand struct {
	Elapsed time.Duration
}

// TickResponse reports the active order after the tick (nil when the station
// went idle) and the order resolved during the tick, if any
type TickResponse struct {
	Active   *crafting.Order
	Resolved *crafting.Order
}

// TickHandler handles TickCommand
type TickHandler struct {
	station *crafting.Station
	orders  crafting.OrderRepository
}

// NewTickHandler creates a new tick handler. A nil repository disables
// persistence.
func NewTickHandler(station *crafting.Station, orders crafting.OrderRepository) *TickHandler {
	return &TickHandler{station: station, orders: orders}
}

// Handle executes the tick command and persists every order whose state
// changed: the order that was active going in (it may now be terminal) and
// the order that became active.
func (h *TickHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*TickCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *TickCommand")
	}

	before, _ := h.station.Orders()
	if err := h.station.Tick(cmd.Elapsed); err != nil {
		return nil, err
	}
	after, _ := h.station.Orders()

	var resolved *crafting.Order
	if before != nil && before.Status().IsTerminal() {
		resolved = before
	}

	if h.orders != nil {
		if before != nil {
			if err := h.orders.Save(ctx, before); err != nil {
				return nil, fmt.Errorf("failed to persist order %s: %w", before.ID(), err)
			}
		}
		if after != nil && after != before {
			if err := h.orders.Save(ctx, after); err != nil {
				return nil, fmt.Errorf("failed to persist order %s: %w", after.ID(), err)
			}
		}
	}

	return &TickResponse{Active: after, Resolved: resolved}, nil
}
