package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hos-route-service/internal/domain"
	"hos-route-service/internal/platform/obs"
)

// OSRM route response structures (GeoJSON geometry).
type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"` // [lng, lat] pairs
	} `json:"geometry"`
}

// OSRMRouteProvider implements ports.RouteProvider against the OSRM
// routing API with the driving profile and full geometry.
//
// The client is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
}

func NewOSRMRouteProvider(baseURL string, timeout time.Duration) *OSRMRouteProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OSRMRouteProvider{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Route fetches the polyline from origin to destination. Zero routes is
// a settled success with an empty leg, not an error.
func (p *OSRMRouteProvider) Route(ctx context.Context, origin, destination domain.Coordinate) (_ domain.RouteLeg, err error) {
	defer obs.Time(ctx, "osrm.Route")(&err)

	// OSRM expects lng,lat pairs in the path.
	endpoint := fmt.Sprintf(
		"%s/route/v1/driving/%f,%f;%f,%f?overview=full&geometries=geojson",
		p.baseURL,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("route: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route: %v: %w", err, domain.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("route: unexpected status %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	}

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("route: decode response: %w", domain.ErrServiceUnavailable)
	}

	// "NoRoute" and friends mean the service answered but found nothing
	// to draw. Callers keep their partial results.
	if decoded.Code != "Ok" || len(decoded.Routes) == 0 {
		return domain.RouteLeg{}, nil
	}

	coords := decoded.Routes[0].Geometry.Coordinates
	leg := make(domain.RouteLeg, 0, len(coords))
	for _, pair := range coords {
		if len(pair) != 2 {
			return nil, fmt.Errorf("route: invalid coordinate pair %v: %w", pair, domain.ErrServiceUnavailable)
		}
		// Swap [lng, lat] to internal (lat, lng) order.
		leg = append(leg, domain.Coordinate{Lat: pair[1], Lon: pair[0]})
	}

	return leg, nil
}
