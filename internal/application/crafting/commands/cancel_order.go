package commands

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
)

// CancelOrderCommand cancels one order by ID, whether active or queued
type CancelOrderCommand struct {
	OrderID string
}

// CancelOrderResponse reports whether an order was actually cancelled
type CancelOrderResponse struct {
	Cancelled bool
}

// CancelOrderHandler handles CancelOrderCommand
type CancelOrderHandler struct {
	station *crafting.Station
	orders  crafting.OrderRepository
}

// NewCancelOrderHandler creates a new cancel order handler
func NewCancelOrderHandler(station *crafting.Station, orders crafting.OrderRepository) *CancelOrderHandler {
	return &CancelOrderHandler{station: station, orders: orders}
}

// Handle executes the cancel order command. Cancelling the active order
// promotes the next queued one; both state changes are persisted.
func (h *CancelOrderHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*CancelOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelOrderCommand")
	}

	cancelled := h.station.CancelOrder(cmd.OrderID)

	if cancelled && h.orders != nil {
		if order, ok := h.station.GetOrder(cmd.OrderID); ok {
			if err := h.orders.Save(ctx, order); err != nil {
				return nil, fmt.Errorf("failed to persist order %s: %w", cmd.OrderID, err)
			}
		}
		if active, _ := h.station.Orders(); active != nil {
			if err := h.orders.Save(ctx, active); err != nil {
				return nil, fmt.Errorf("failed to persist order %s: %w", active.ID(), err)
			}
		}
	}

	return &CancelOrderResponse{Cancelled: cancelled}, nil
}
