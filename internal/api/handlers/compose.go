package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"hos-route-service/internal/api/dto"
	"hos-route-service/internal/domain"
	"hos-route-service/internal/ports"
	"hos-route-service/internal/session"
)

type ComposeHandler struct {
	Renderer *session.Renderer
	Repo     ports.TripRepository // optional, enables compose by trip_id
}

// Compose runs a map render cycle for a trip and returns the resulting
// session state. A newer request supersedes any in-flight one; the
// superseded caller still receives the state of the latest session.
func (h *ComposeHandler) Compose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ComposeRequest

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

	trip, ok := h.resolveTrip(w, r, &req)
	if !ok {
		return
	}

	snap := h.Renderer.Render(r.Context(), trip)
	writeJSON(w, r, composeStatus(snap), snapshotToDTO(snap))
}

func (h *ComposeHandler) resolveTrip(w http.ResponseWriter, r *http.Request, req *dto.ComposeRequest) (*domain.Trip, bool) {
	if req.TripID != 0 {
		if h.Repo == nil {
			writeError(w, r, http.StatusServiceUnavailable, "trip store not configured")
			return nil, false
		}

		trip, err := h.Repo.GetTrip(r.Context(), req.TripID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, r, http.StatusNotFound, "trip not found")
				return nil, false
			}
			log.Printf("get trip failed: id=%d err=%v", req.TripID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return nil, false
		}
		return trip, true
	}

	if req.Trip == nil {
		writeError(w, r, http.StatusBadRequest, "trip_id or trip is required")
		return nil, false
	}
	return tripFromDTO(req.Trip), true
}

func composeStatus(snap session.Snapshot) int {
	switch snap.State {
	case session.StateReady:
		return http.StatusOK
	case session.StateError:
		if strings.HasPrefix(snap.ErrMsg, "location not found") {
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadGateway
	default:
		// Superseded before settling; the latest generation is still loading.
		return http.StatusAccepted
	}
}

func snapshotToDTO(snap session.Snapshot) dto.ComposeResponse {
	res := dto.ComposeResponse{
		State: string(snap.State),
		Error: snap.ErrMsg,
	}

	if snap.Session == nil {
		return res
	}

	content := snap.Session.Content
	res.SessionID = snap.Session.ID
	res.TripID = snap.Session.TripID

	res.Route = make([]dto.CoordinateResponse, 0, len(content.Route.Coordinates))
	for _, c := range content.Route.Coordinates {
		res.Route = append(res.Route, dto.CoordinateResponse{Lat: c.Lat, Lng: c.Lon})
	}

	res.Bounds = &dto.BoundsResponse{
		MinLat: content.Bounds.MinLat,
		MinLng: content.Bounds.MinLon,
		MaxLat: content.Bounds.MaxLat,
		MaxLng: content.Bounds.MaxLon,
	}

	res.Markers = make([]dto.MarkerResponse, 0, len(content.Markers))
	for _, m := range content.Markers {
		res.Markers = append(res.Markers, dto.MarkerResponse{
			Kind:     string(m.Kind),
			Position: dto.CoordinateResponse{Lat: m.Position.Lat, Lng: m.Position.Lon},
			Label:    m.Label,
		})
	}

	return res
}
