package commands

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
)

// CancelAllOrdersCommand cancels the active order and every queued order
type CancelAllOrdersCommand struct{}

// CancelAllOrdersResponse reports how many orders were cancelled
type CancelAllOrdersResponse struct {
	Cancelled int
}

// CancelAllOrdersHandler handles CancelAllOrdersCommand
type CancelAllOrdersHandler struct {
	station *crafting.Station
	orders  crafting.OrderRepository
}

// NewCancelAllOrdersHandler creates a new cancel all orders handler
func NewCancelAllOrdersHandler(station *crafting.Station, orders crafting.OrderRepository) *CancelAllOrdersHandler {
	return &CancelAllOrdersHandler{station: station, orders: orders}
}

// Handle executes the cancel all orders command
func (h *CancelAllOrdersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*CancelAllOrdersCommand); !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelAllOrdersCommand")
	}

	active, queued := h.station.Orders()
	var open []*crafting.Order
	if active != nil {
		open = append(open, active)
	}
	open = append(open, queued...)

	h.station.CancelAllOrders()

	if h.orders != nil {
		for _, order := range open {
			if err := h.orders.Save(ctx, order); err != nil {
				return nil, fmt.Errorf("failed to persist order %s: %w", order.ID(), err)
			}
		}
	}

	return &CancelAllOrdersResponse{Cancelled: len(open)}, nil
}
