// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/brownkon/StarWarsApp/internal/domain/resolve"
)

// resolveRequest mirrors the JSON body of POST /api/resolve.
type resolveRequest struct {
	Homeworld *string  `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Starships []string `json:"starships"`
}

// resolveResponse mirrors the request shape with display names.
type resolveResponse struct {
	Homeworld string   `json:"homeworld"`
	Films     []string `json:"films"`
	Species   []string `json:"species"`
	Starships []string `json:"starships"`
}

// ResolveHandler handles reference resolution requests.
type ResolveHandler struct {
	deps Dependencies
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(deps Dependencies) *ResolveHandler {
	return &ResolveHandler{deps: deps}
}

// HandlePostResolve handles POST /api/resolve requests.
func (h *ResolveHandler) HandlePostResolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp := h.deps.Resolve(r.Context(), resolve.Request{
		Homeworld: req.Homeworld,
		Films:     req.Films,
		Species:   req.Species,
		Starships: req.Starships,
	})

	writeJSON(w, http.StatusOK, resolveResponse{
		Homeworld: resp.Homeworld,
		Films:     resp.Films,
		Species:   resp.Species,
		Starships: resp.Starships,
	})
}
