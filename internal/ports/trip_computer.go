package ports

import (
	"context"
	"hos-route-service/internal/domain"
)

// Port: the external trip computation collaborator. It owns HOS legality,
// daily-log segmentation and cycle accounting; this service only consumes
// its opaque Trip result.
type TripComputer interface {
	ComputeTrip(ctx context.Context, req domain.TripRequest) (*domain.Trip, error)
}
