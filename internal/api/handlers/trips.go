package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"hos-route-service/internal/api/dto"
	"hos-route-service/internal/domain"
	"hos-route-service/internal/ports"
	"hos-route-service/internal/presenter"
)

// maxCycleHours is the 70-hour/8-day cycle ceiling accepted on
// submission; the collaborator owns all further legality checks.
const maxCycleHours = 70

type TripHandler struct {
	Computer ports.TripComputer
	Repo     ports.TripRepository
}

// Collection handles the /trips collection: POST submits a trip for
// computation and persists the result, GET lists stored trips.
func (h *TripHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.submit(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *TripHandler) submit(w http.ResponseWriter, r *http.Request) {
	var req dto.TripSubmissionRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	current := strings.TrimSpace(req.CurrentLocation)
	pickup := strings.TrimSpace(req.PickupLocation)
	dropoff := strings.TrimSpace(req.DropoffLocation)
	if current == "" || pickup == "" || dropoff == "" {
		writeError(w, r, http.StatusBadRequest, "current_location, pickup_location and dropoff_location are required")
		return
	}
	if req.CurrentCycleUsed < 0 || req.CurrentCycleUsed > maxCycleHours {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used must be between 0 and 70")
		return
	}

	trip, err := h.Computer.ComputeTrip(r.Context(), domain.TripRequest{
		CurrentLocation:  current,
		PickupLocation:   pickup,
		DropoffLocation:  dropoff,
		CurrentCycleUsed: req.CurrentCycleUsed,
	})
	if err != nil {
		log.Printf("trip computation failed: %v", err)
		if errors.Is(err, domain.ErrServiceUnavailable) {
			writeError(w, r, http.StatusBadGateway, "trip computation service unavailable")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Repo != nil {
		if err := h.Repo.SaveTrip(r.Context(), trip); err != nil {
			log.Printf("save trip failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, r, http.StatusCreated, tripToDTO(trip))
}

func (h *TripHandler) list(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "trip store not configured")
		return
	}

	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, tripToDTO(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Detail handles /trips/{id} and /trips/{id}/logsheet.
func (h *TripHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "trip store not configured")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/trips/")
	idPart, tail, _ := strings.Cut(rest, "/")

	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, "invalid trip id")
		return
	}

	trip, err := h.Repo.GetTrip(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "trip not found")
			return
		}
		log.Printf("get trip failed: id=%d err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	switch tail {
	case "":
		writeJSON(w, r, http.StatusOK, tripToDTO(trip))
	case "logsheet":
		writeJSON(w, r, http.StatusOK, presenter.BuildLogsheet(trip))
	default:
		writeError(w, r, http.StatusNotFound, "not found")
	}
}
