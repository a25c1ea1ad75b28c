package service

import (
	"context"
	"errors"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
)

// ErrRoutingDisabled is returned when no distance provider is configured
var ErrRoutingDisabled = errors.New("road distance lookup is disabled")

// DistanceService looks up road distances for mileage legs
type DistanceService interface {
	RoadDistance(ctx context.Context, origin, destination string) (*port.RouteDistance, error)
}

type distanceServiceImpl struct {
	provider port.DistanceProvider
	logger   Logger
}

// NewDistanceService creates a new DistanceService. A nil provider
// disables lookups.
func NewDistanceService(provider port.DistanceProvider, logger Logger) DistanceService {
	return &distanceServiceImpl{
		provider: provider,
		logger:   logger,
	}
}

// RoadDistance returns the driving distance between two places
func (s *distanceServiceImpl) RoadDistance(ctx context.Context, origin, destination string) (*port.RouteDistance, error) {
	if s.provider == nil {
		return nil, ErrRoutingDisabled
	}
	route, err := s.provider.RoadDistance(ctx, origin, destination)
	if err != nil {
		s.logger.Error("Road distance lookup failed", "origin", origin, "destination", destination, "error", err)
		return nil, err
	}
	return route, nil
}
