package queries

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
)

// GetOrderQuery looks up one order by ID, including terminal orders
type GetOrderQuery struct {
	OrderID string
}

// GetOrderResponse carries the order (nil when not found)
type GetOrderResponse struct {
	Order *crafting.Order
	Found bool
}

// GetOrderHandler handles GetOrderQuery
type GetOrderHandler struct {
	station *crafting.Station
}

// NewGetOrderHandler creates a new get order handler
func NewGetOrderHandler(station *crafting.Station) *GetOrderHandler {
	return &GetOrderHandler{station: station}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetOrderQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetOrderQuery")
	}

	order, found := h.station.GetOrder(query.OrderID)
	return &GetOrderResponse{Order: order, Found: found}, nil
}
