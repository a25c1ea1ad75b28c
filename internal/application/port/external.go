package port

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingPlace is returned when origin or destination is blank
	ErrMissingPlace = errors.New("origin and destination are required")

	// ErrPlaceNotFound is returned when a place name cannot be geocoded
	ErrPlaceNotFound = errors.New("place not found")

	// ErrNoRoute is returned when no driving route connects two places
	ErrNoRoute = errors.New("no driving route found")
)

// Coordinate is a WGS84 position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// RouteDistance is the driving distance between two named places.
type RouteDistance struct {
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	From        Coordinate      `json:"from"`
	To          Coordinate      `json:"to"`
	DistanceKm  decimal.Decimal `json:"distance_km"`
}

// DistanceProvider looks up road distances for mileage claims.
type DistanceProvider interface {
	RoadDistance(ctx context.Context, origin, destination string) (*RouteDistance, error)
}
