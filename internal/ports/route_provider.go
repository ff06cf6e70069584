package ports

import (
	"context"
	"hos-route-service/internal/domain"
)

// Contract for retrieving a driving-mode polyline between two coordinates.
type RouteProvider interface {
	// Route returns the full route geometry from origin to destination.
	// A service that finds zero routes yields an empty leg and a nil
	// error; callers treat that as "no polyline to draw". Transport and
	// HTTP failures surface as domain.ErrServiceUnavailable.
	Route(ctx context.Context, origin, destination domain.Coordinate) (domain.RouteLeg, error)
}
