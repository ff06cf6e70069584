package domain

// MarkerKind categorizes a map marker.
type MarkerKind string

const (
	MarkerCurrent MarkerKind = "current"
	MarkerPickup  MarkerKind = "pickup"
	MarkerDropoff MarkerKind = "dropoff"
	MarkerFuel    MarkerKind = "fuel"
	MarkerRest    MarkerKind = "rest"
)

// StopMarker is a synthetic or endpoint marker drawn on the map for one
// render cycle. Markers live and die with their map session.
type StopMarker struct {
	Kind     MarkerKind
	Position Coordinate
	Label    string
}
