package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hos-route-service/internal/api"
	"hos-route-service/internal/api/dto"
	"hos-route-service/internal/domain"
	"hos-route-service/internal/services"
	"hos-route-service/internal/session"
)

type fakeComputer struct {
	err error
}

func (c *fakeComputer) ComputeTrip(ctx context.Context, req domain.TripRequest) (*domain.Trip, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &domain.Trip{
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
		TotalDistance:    1432.5,
		TotalDuration:    30.5,
		DailyLogs: []domain.DailyLog{
			{DayNumber: 1, Date: "2025-03-01", DrivingHours: 11, OnDutyHours: 2, OffDutyHours: 11},
			{DayNumber: 2, Date: "2025-03-02", DrivingHours: 8.5, OnDutyHours: 1, OffDutyHours: 14.5},
		},
	}, nil
}

type memRepo struct {
	nextID int64
	trips  map[int64]*domain.Trip
}

func newMemRepo() *memRepo {
	return &memRepo{trips: map[int64]*domain.Trip{}}
}

func (r *memRepo) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	r.nextID++
	trip.ID = r.nextID
	r.trips[trip.ID] = trip
	return nil
}

func (r *memRepo) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	trip, ok := r.trips[id]
	if !ok {
		return nil, fmt.Errorf("trip %d: %w", id, domain.ErrNotFound)
	}
	return trip, nil
}

func (r *memRepo) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	out := make([]*domain.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type tableGeocoder struct{}

func (tableGeocoder) Resolve(ctx context.Context, place string) (domain.Coordinate, error) {
	coords := map[string]domain.Coordinate{
		"Los Angeles, CA": {Lat: 34.05, Lon: -118.24},
		"Phoenix, AZ":     {Lat: 33.45, Lon: -112.07},
		"Dallas, TX":      {Lat: 32.78, Lon: -96.80},
	}
	c, ok := coords[place]
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("resolve %q: %w", place, domain.ErrNotFound)
	}
	return c, nil
}

type segmentRouter struct{}

func (segmentRouter) Route(ctx context.Context, origin, dest domain.Coordinate) (domain.RouteLeg, error) {
	return domain.RouteLeg{origin, dest}, nil
}

type testStack struct {
	handler  http.Handler
	repo     *memRepo
	computer *fakeComputer
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	computer := &fakeComputer{}
	repo := newMemRepo()

	manager := session.NewManager()
	t.Cleanup(manager.Close)
	renderer := session.NewRenderer(manager, services.NewComposer(tableGeocoder{}, segmentRouter{}), nil, nil)

	return &testStack{
		handler:  api.NewRouter(computer, repo, renderer),
		repo:     repo,
		computer: computer,
	}
}

func (s *testStack) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func submissionBody() dto.TripSubmissionRequest {
	return dto.TripSubmissionRequest{
		CurrentLocation:  "Los Angeles, CA",
		PickupLocation:   "Phoenix, AZ",
		DropoffLocation:  "Dallas, TX",
		CurrentCycleUsed: 12,
	}
}

func TestHealth(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestSubmitTrip(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodPost, "/trips", submissionBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	trip := decode[dto.TripResponse](t, rec)
	assert.Equal(t, int64(1), trip.ID, "persisted trip gets an id")
	assert.Len(t, trip.DailyLogs, 2)

	rec = stack.do(t, http.MethodGet, "/trips/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Phoenix, AZ", decode[dto.TripResponse](t, rec).PickupLocation)

	rec = stack.do(t, http.MethodGet, "/trips", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.ListTripResponse](t, rec).Trips, 1)
}

func TestSubmitTripValidation(t *testing.T) {
	stack := newTestStack(t)

	body := submissionBody()
	body.PickupLocation = "   "
	rec := stack.do(t, http.MethodPost, "/trips", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body = submissionBody()
	body.CurrentCycleUsed = 70.5
	rec = stack.do(t, http.MethodPost, "/trips", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/trips", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	stack.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitTripCollaboratorDown(t *testing.T) {
	stack := newTestStack(t)
	stack.computer.err = fmt.Errorf("post trip: %w", domain.ErrServiceUnavailable)

	rec := stack.do(t, http.MethodPost, "/trips", submissionBody())
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTripNotFound(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodGet, "/trips/99", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = stack.do(t, http.MethodGet, "/trips/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComposeStoredTrip(t *testing.T) {
	stack := newTestStack(t)

	trip := &domain.Trip{
		ID:              1,
		CurrentLocation: "Los Angeles, CA",
		PickupLocation:  "Phoenix, AZ",
		DropoffLocation: "Dallas, TX",
		TotalDistance:   1432.5,
	}
	stack.repo.trips[1] = trip
	stack.repo.nextID = 1

	rec := stack.do(t, http.MethodPost, "/compose", dto.ComposeRequest{TripID: 1})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[dto.ComposeResponse](t, rec)
	assert.Equal(t, "ready", res.State)
	assert.NotEmpty(t, res.SessionID)
	assert.Equal(t, int64(1), res.TripID)
	assert.Len(t, res.Route, 4, "two legs of two points each")
	require.NotNil(t, res.Bounds)
	assert.Less(t, res.Bounds.MinLat, 32.78)

	kinds := map[string]int{}
	for _, m := range res.Markers {
		kinds[m.Kind]++
	}
	assert.Equal(t, 1, kinds["current"])
	assert.Equal(t, 1, kinds["pickup"])
	assert.Equal(t, 1, kinds["dropoff"])
	assert.Equal(t, 1, kinds["fuel"], "floor(1432.5/1000) fuel stops")
}

func TestComposeUnresolvableLocation(t *testing.T) {
	stack := newTestStack(t)

	trip := dto.TripResponse{
		CurrentLocation: "Los Angeles, CA",
		PickupLocation:  "Nowhere, ZZ",
		DropoffLocation: "Dallas, TX",
	}
	rec := stack.do(t, http.MethodPost, "/compose", dto.ComposeRequest{Trip: &trip})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	res := decode[dto.ComposeResponse](t, rec)
	assert.Equal(t, "error", res.State)
	assert.Contains(t, res.Error, "location not found: Nowhere, ZZ")
	assert.Empty(t, res.SessionID)
}

func TestComposeTripNotFound(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodPost, "/compose", dto.ComposeRequest{TripID: 42})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = stack.do(t, http.MethodPost, "/compose", dto.ComposeRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogsheet(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodPost, "/trips", submissionBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = stack.do(t, http.MethodGet, "/trips/1/logsheet", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sheet struct {
		Days   int `json:"days"`
		Sheets []struct {
			Driving string `json:"driving"`
		} `json:"sheets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
	assert.Equal(t, 2, sheet.Days)
	require.Len(t, sheet.Sheets, 2)
	assert.Equal(t, "11:00", sheet.Sheets[0].Driving)
}

func TestMethodNotAllowed(t *testing.T) {
	stack := newTestStack(t)

	rec := stack.do(t, http.MethodDelete, "/trips", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = stack.do(t, http.MethodGet, "/compose", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
