package tripapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hos-route-service/internal/domain"
	"hos-route-service/internal/platform/obs"
)

// Client talks to the external trip computation service. The service
// owns route metrics and HOS daily-log segmentation; a non-2xx response
// is surfaced as a generic submission error so the map path and the
// form path can fail independently.
type Client struct {
	session *http.Client
	baseURL string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		session: &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *Client) ComputeTrip(ctx context.Context, req domain.TripRequest) (_ *domain.Trip, err error) {
	defer obs.Time(ctx, "tripapi.ComputeTrip")(&err)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("compute trip: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/trips/", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("compute trip: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.session.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("compute trip: %v: %w", err, domain.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("compute trip: unexpected status %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	}

	var trip domain.Trip
	if err := json.NewDecoder(resp.Body).Decode(&trip); err != nil {
		return nil, fmt.Errorf("compute trip: decode response: %w", err)
	}

	return &trip, nil
}
