package domain

// RouteLeg is the coordinate polyline produced by routing one
// origin -> destination pair. It may be empty when the routing service
// reports zero routes; an empty leg is not an error.
type RouteLeg []Coordinate

// ComposedRoute is the concatenation of leg polylines in travel order
// (current -> pickup, then pickup -> dropoff). Legs are never reordered
// and the shared pickup coordinate is kept once per leg boundary.
type ComposedRoute struct {
	Coordinates []Coordinate
}

// ComposeLegs concatenates legs in the order given.
func ComposeLegs(legs ...RouteLeg) ComposedRoute {
	n := 0
	for _, leg := range legs {
		n += len(leg)
	}

	coords := make([]Coordinate, 0, n)
	for _, leg := range legs {
		coords = append(coords, leg...)
	}

	return ComposedRoute{Coordinates: coords}
}

func (r ComposedRoute) Empty() bool { return len(r.Coordinates) == 0 }

// Endpoints are the three resolved trip locations in travel order.
type Endpoints struct {
	Current Coordinate
	Pickup  Coordinate
	Dropoff Coordinate
}

// Composition is the output of the route composer for one render cycle:
// the stitched polyline, the resolved endpoints, and the padded viewport.
type Composition struct {
	Route     ComposedRoute
	Endpoints Endpoints
	Bounds    Bounds
}

// MapContent is everything a map session draws in a single paint pass.
type MapContent struct {
	Route   ComposedRoute
	Bounds  Bounds
	Markers []StopMarker
}
