package metrics

import (
	"context"
	"errors"

	"hos-route-service/internal/domain"
	"hos-route-service/internal/ports"
)

// InstrumentGeocoder wraps a geocoder with per-call outcome counting.
func InstrumentGeocoder(next ports.Geocoder, c *Collector) ports.Geocoder {
	if c == nil {
		return next
	}
	return &countingGeocoder{next: next, c: c}
}

type countingGeocoder struct {
	next ports.Geocoder
	c    *Collector
}

func (g *countingGeocoder) Resolve(ctx context.Context, place string) (domain.Coordinate, error) {
	coord, err := g.next.Resolve(ctx, place)

	switch {
	case err == nil:
		g.c.GeocodeCalls.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrNotFound):
		g.c.GeocodeCalls.WithLabelValues("not_found").Inc()
	default:
		g.c.GeocodeCalls.WithLabelValues("unavailable").Inc()
	}

	return coord, err
}

// InstrumentRouteProvider wraps a route provider with per-call outcome
// counting. An empty leg counts separately from a failure.
func InstrumentRouteProvider(next ports.RouteProvider, c *Collector) ports.RouteProvider {
	if c == nil {
		return next
	}
	return &countingRouteProvider{next: next, c: c}
}

type countingRouteProvider struct {
	next ports.RouteProvider
	c    *Collector
}

func (p *countingRouteProvider) Route(ctx context.Context, origin, dest domain.Coordinate) (domain.RouteLeg, error) {
	leg, err := p.next.Route(ctx, origin, dest)

	switch {
	case err != nil:
		p.c.RouteCalls.WithLabelValues("unavailable").Inc()
	case len(leg) == 0:
		p.c.RouteCalls.WithLabelValues("empty").Inc()
	default:
		p.c.RouteCalls.WithLabelValues("ok").Inc()
	}

	return leg, err
}
