package ports

import (
	"context"
	"hos-route-service/internal/domain"
)

// Port: an optional cache of finished compositions keyed by trip ID.
// The geocoding client itself never caches (each resolve re-queries);
// this cache sits above the composer, whose output is deterministic for
// a given trip.
type RouteCache interface {
	// GetComposition returns the cached composition and true on a hit.
	// A miss is (nil, false, nil); errors are reserved for the cache
	// backend itself.
	GetComposition(ctx context.Context, tripID int64) (*domain.Composition, bool, error)
	// PutComposition stores a composition under the trip ID.
	PutComposition(ctx context.Context, tripID int64, comp *domain.Composition) error
}
