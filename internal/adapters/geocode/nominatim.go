package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hos-route-service/internal/domain"
	"hos-route-service/internal/platform/obs"
)

// candidate is one match from the Nominatim search endpoint. Latitude
// and longitude arrive as numeric strings.
type candidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder implements ports.Geocoder against the Nominatim
// search API. Every Resolve issues exactly one outbound request; there
// are no retries and no caching, so a repeated query re-queries.
//
// The client is safe for concurrent use.
type NominatimGeocoder struct {
	session *http.Client
	baseURL string
}

func NewNominatimGeocoder(baseURL string, timeout time.Duration) *NominatimGeocoder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NominatimGeocoder{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Resolve returns the first (highest-confidence) match for place.
func (g *NominatimGeocoder) Resolve(ctx context.Context, place string) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, "nominatim.Resolve")(&err)

	if strings.TrimSpace(place) == "" {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: %w", place, domain.ErrNotFound)
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", place)
	q.Set("limit", "1")

	endpoint := g.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: create request: %w", place, err)
	}
	req.Header.Set("Accept", "application/json")
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", "hos-route-service/1.0")

	resp, err := g.session.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: %v: %w", place, err, domain.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: unexpected status %d: %w", place, resp.StatusCode, domain.ErrServiceUnavailable)
	}

	var matches []candidate
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: decode response: %w", place, domain.ErrServiceUnavailable)
	}

	if len(matches) == 0 {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: %w", place, domain.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(matches[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: invalid lat %q: %w", place, matches[0].Lat, domain.ErrServiceUnavailable)
	}
	lon, err := strconv.ParseFloat(matches[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: invalid lon %q: %w", place, matches[0].Lon, domain.ErrServiceUnavailable)
	}

	coord := domain.Coordinate{Lat: lat, Lon: lon}
	if !coord.Valid() {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: coordinate out of range (%v, %v): %w", place, lat, lon, domain.ErrServiceUnavailable)
	}

	return coord, nil
}
