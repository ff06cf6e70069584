package api

import (
	"net/http"

	"hos-route-service/internal/api/handlers"
	"hos-route-service/internal/ports"
	"hos-route-service/internal/session"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// repo may be nil when no database is configured; trip listing and
// compose-by-id respond 503 in that case.
func NewRouter(computer ports.TripComputer, repo ports.TripRepository, renderer *session.Renderer) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Computer: computer,
		Repo:     repo,
	}
	composeHandler := &handlers.ComposeHandler{
		Renderer: renderer,
		Repo:     repo,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/trips", tripHandler.Collection)
	mux.HandleFunc("/trips/", tripHandler.Detail)
	mux.HandleFunc("/compose", composeHandler.Compose)

	return requestIDMiddleware(loggingMiddleware(mux))
}
