package queries

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
)

// GetAllOrdersQuery reads the station's current scheduling state
type GetAllOrdersQuery struct{}

// GetAllOrdersResponse carries the active order (nil when idle) and the
// pending queue in arrival order
type GetAllOrdersResponse struct {
	Current *crafting.Order
	Queued  []*crafting.Order
}

// GetAllOrdersHandler handles GetAllOrdersQuery
type GetAllOrdersHandler struct {
	station *crafting.Station
}

// NewGetAllOrdersHandler creates a new get all orders handler
func NewGetAllOrdersHandler(station *crafting.Station) *GetAllOrdersHandler {
	return &GetAllOrdersHandler{station: station}
}

// Handle executes the get all orders query
func (h *GetAllOrdersHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetAllOrdersQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetAllOrdersQuery")
	}

	current, queued := h.station.Orders()
	return &GetAllOrdersResponse{Current: current, Queued: queued}, nil
}
