// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/brownkon/StarWarsApp/internal/domain/model"
	"github.com/brownkon/StarWarsApp/internal/domain/resolve"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Characters returns the transformed list in the requested order,
	// refreshing from the source when asked or when the cache is cold.
	Characters(ctx context.Context, sortBy, order string, refresh bool) ([]model.Character, error)

	// Resolve turns reference identifiers into display names.
	Resolve(ctx context.Context, req resolve.Request) resolve.Response
}

// Character mirrors the read shape returned by the characters endpoint.
type Character = model.Character

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	charactersHandler *CharactersHandler
	resolveHandler    *ResolveHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		charactersHandler: NewCharactersHandler(deps),
		resolveHandler:    NewResolveHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/characters", MetricsMiddleware(s.charactersHandler.HandleGetCharacters, "characters"))
	mux.HandleFunc("/api/resolve", MetricsMiddleware(s.resolveHandler.HandlePostResolve, "resolve"))
}

// detailResponse is the error body shape: a human-readable detail message.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, detailResponse{Detail: detail})
}
