package ports

import (
	"context"
	"hos-route-service/internal/domain"
)

// Port: a boundary for persisting and retrieving computed trips.
type TripRepository interface {
	// SaveTrip stores a trip together with its daily logs and fills in
	// the generated trip ID.
	SaveTrip(ctx context.Context, trip *domain.Trip) error
	// GetTrip retrieves one trip with its daily logs, or
	// domain.ErrNotFound when no such trip exists.
	GetTrip(ctx context.Context, id int64) (*domain.Trip, error)
	// ListTrips retrieves all stored trips, newest first.
	ListTrips(ctx context.Context) ([]*domain.Trip, error)
}
