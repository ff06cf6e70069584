package ports

import (
	"context"
	"hos-route-service/internal/domain"
)

// Contract for resolving a free-text place name to coordinates.
type Geocoder interface {
	// Resolve returns the highest-confidence match for place.
	// It fails with domain.ErrNotFound when the lookup service returns
	// zero matches and with domain.ErrServiceUnavailable on transport or
	// HTTP errors. Each call issues one outbound request; results are
	// never cached across calls.
	Resolve(ctx context.Context, place string) (domain.Coordinate, error)
}
