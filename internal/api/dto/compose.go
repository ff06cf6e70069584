package dto

// ComposeRequest carries the trip to compose a map for. Either a
// previously stored trip_id or a full inline trip can be supplied;
// trip_id wins when both are present.
type ComposeRequest struct {
	TripID int64         `json:"trip_id,omitempty"`
	Trip   *TripResponse `json:"trip,omitempty"`
}

type CoordinateResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type BoundsResponse struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

type MarkerResponse struct {
	Kind     string             `json:"kind"`
	Position CoordinateResponse `json:"position"`
	Label    string             `json:"label"`
}

type ComposeResponse struct {
	State     string               `json:"state"`
	Error     string               `json:"error,omitempty"`
	SessionID string               `json:"session_id,omitempty"`
	TripID    int64                `json:"trip_id,omitempty"`
	Route     []CoordinateResponse `json:"route,omitempty"`
	Bounds    *BoundsResponse      `json:"bounds,omitempty"`
	Markers   []MarkerResponse     `json:"markers,omitempty"`
}
