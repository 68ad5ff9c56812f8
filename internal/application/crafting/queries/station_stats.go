package queries

import (
	"context"
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/application/common"
	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
)

// GetStationStatsQuery reads the station's diagnostic counters
type GetStationStatsQuery struct{}

// GetStationStatsResponse carries the stats snapshot. Keys are stable for a
// given station instance across calls that don't mutate state.
type GetStationStatsResponse struct {
	Stats map[string]interface{}
}

// GetStationStatsHandler handles GetStationStatsQuery
type GetStationStatsHandler struct {
	station *crafting.Station
}

// NewGetStationStatsHandler creates a new station stats handler
func NewGetStationStatsHandler(station *crafting.Station) *GetStationStatsHandler {
	return &GetStationStatsHandler{station: station}
}

// Handle executes the station stats query
func (h *GetStationStatsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	if _, ok := request.(*GetStationStatsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStationStatsQuery")
	}

	return &GetStationStatsResponse{Stats: h.station.Stats()}, nil
}
