package service

import (
	"context"
	"errors"
	"testing"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDistanceProvider struct {
	route *port.RouteDistance
	err   error
}

func (s *stubDistanceProvider) RoadDistance(ctx context.Context, origin, destination string) (*port.RouteDistance, error) {
	return s.route, s.err
}

func TestDistanceService_RoadDistance(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to provider", func(t *testing.T) {
		want := &port.RouteDistance{Origin: "กรุงเทพ", Destination: "ขอนแก่น", DistanceKm: dec("445.12")}
		svc := NewDistanceService(&stubDistanceProvider{route: want}, &recordingLogger{})

		got, err := svc.RoadDistance(ctx, "กรุงเทพ", "ขอนแก่น")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("provider error is logged", func(t *testing.T) {
		logger := &recordingLogger{}
		svc := NewDistanceService(&stubDistanceProvider{err: errors.New("timeout")}, logger)

		_, err := svc.RoadDistance(ctx, "ก", "ข")
		assert.Error(t, err)
		assert.Equal(t, 1, logger.errors())
	})

	t.Run("disabled", func(t *testing.T) {
		svc := NewDistanceService(nil, &recordingLogger{})
		_, err := svc.RoadDistance(ctx, "ก", "ข")
		assert.ErrorIs(t, err, ErrRoutingDisabled)
	})
}
