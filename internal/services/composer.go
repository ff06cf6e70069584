package services

import (
	"context"
	"errors"
	"fmt"

	"hos-route-service/internal/domain"
	"hos-route-service/internal/platform/obs"
	"hos-route-service/internal/ports"
)

// boundsPadding expands the viewport by 10% of the route extent.
const boundsPadding = 0.1

// Composer stitches a trip's three locations into one continuous
// two-leg route with a padded viewport.
//
// Failure policy: any geocoding failure is fatal to the whole
// composition; no partial map is produced. A routing call that reports
// zero routes contributes an empty leg and is not an error, while a
// routing transport failure is fatal.
type Composer struct {
	geocoder ports.Geocoder
	routes   ports.RouteProvider
}

func NewComposer(geocoder ports.Geocoder, routes ports.RouteProvider) *Composer {
	return &Composer{geocoder: geocoder, routes: routes}
}

type geocodeResult struct {
	idx   int
	place string
	coord domain.Coordinate
	err   error
}

type legResult struct {
	idx int
	leg domain.RouteLeg
	err error
}

// Compose resolves the trip's locations, routes the two legs
// current -> pickup and pickup -> dropoff, and concatenates them in
// travel order.
func (c *Composer) Compose(ctx context.Context, trip *domain.Trip) (_ *domain.Composition, err error) {
	defer obs.Time(ctx, "composer.Compose")(&err)

	if trip == nil {
		return nil, errors.New("compose: trip is nil")
	}

	places := [3]string{trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Resolve all three places concurrently; the first failure cancels
	// the remaining lookups and aborts the composition.
	geocodeCh := make(chan geocodeResult, len(places))
	for i, place := range places {
		go func(idx int, place string) {
			coord, err := c.geocoder.Resolve(ctx, place)
			if err != nil {
				cancel()
			}
			geocodeCh <- geocodeResult{idx: idx, place: place, coord: coord, err: err}
		}(i, place)
	}

	var coords [3]domain.Coordinate
	for range places {
		res := <-geocodeCh
		if res.err != nil {
			return nil, &domain.CompositionError{
				Reason: fmt.Sprintf("location not found: %s", res.place),
				Cause:  res.err,
			}
		}
		coords[res.idx] = res.coord
	}

	endpoints := domain.Endpoints{
		Current: coords[0],
		Pickup:  coords[1],
		Dropoff: coords[2],
	}

	// Route both legs concurrently; both must settle before composition
	// proceeds. Zero routes is a settled success with empty content.
	legPairs := [2][2]domain.Coordinate{
		{endpoints.Current, endpoints.Pickup},
		{endpoints.Pickup, endpoints.Dropoff},
	}

	legCh := make(chan legResult, len(legPairs))
	for i, pair := range legPairs {
		go func(idx int, origin, dest domain.Coordinate) {
			leg, err := c.routes.Route(ctx, origin, dest)
			if err != nil {
				cancel()
			}
			legCh <- legResult{idx: idx, leg: leg, err: err}
		}(i, pair[0], pair[1])
	}

	var legs [2]domain.RouteLeg
	for range legPairs {
		res := <-legCh
		if res.err != nil {
			return nil, &domain.CompositionError{
				Reason: "routing service unavailable",
				Cause:  res.err,
			}
		}
		legs[res.idx] = res.leg
	}

	route := domain.ComposeLegs(legs[0], legs[1])

	// Viewport covers the three endpoints plus the full polyline.
	bounds := domain.BoundsOf(endpoints.Current, endpoints.Pickup, endpoints.Dropoff)
	for _, coord := range route.Coordinates {
		bounds = bounds.Extend(coord)
	}
	bounds = bounds.Pad(boundsPadding)

	return &domain.Composition{
		Route:     route,
		Endpoints: endpoints,
		Bounds:    bounds,
	}, nil
}
