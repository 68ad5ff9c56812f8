package commands

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/material"
)

// QueueOrderCommand submits a crafting attempt for an unlocked recipe with
// an already-reserved material allocation
type QueueOrderCommand struct {
	RecipeID  string
	Materials []material.Instance
}

// QueueOrderResponse reports the new order's ID and whether it started
// immediately or was queued behind the active order
type QueueOrderResponse struct {
	OrderID string
	Status  crafting.Status
}

// QueueOrderHandler handles QueueOrderCommand
type QueueOrderHandler struct {
	station *crafting.Station
	orders  crafting.OrderRepository
}

// NewQueueOrderHandler creates a new queue order handler. A nil repository
// disables persistence.
func NewQueueOrderHandler(station *crafting.Station, orders crafting.OrderRepository) *QueueOrderHandler {
	return &QueueOrderHandler{station: station, orders: orders}
}

// Handle executes the queue order command. Recipe and material validation
// errors are returned synchronously; nothing enters the queue on failure.
func (h *QueueOrderHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*QueueOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *QueueOrderCommand")
	}

	logger := common.LoggerFromContext(ctx)

	orderID, err := h.station.QueueOrder(cmd.RecipeID, cmd.Materials)
	if err != nil {
		return nil, err
	}

	order, _ := h.station.GetOrder(orderID)
	if h.orders != nil {
		if err := h.orders.Save(ctx, order); err != nil {
			return nil, fmt.Errorf("failed to persist order %s: %w", orderID, err)
		}
	}

	logger.Log("INFO", "order queued", map[string]interface{}{
		"order_id":  orderID,
		"recipe_id": cmd.RecipeID,
		"status":    string(order.Status()),
	})

	return &QueueOrderResponse{OrderID: orderID, Status: order.Status()}, nil
}
