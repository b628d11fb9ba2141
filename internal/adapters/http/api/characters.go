// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/brownkon/StarWarsApp/internal/adapters/swapi"
	service "github.com/brownkon/StarWarsApp/internal/app"
)

// CharactersHandler handles character list requests.
type CharactersHandler struct {
	deps Dependencies
}

// NewCharactersHandler creates a new characters handler.
func NewCharactersHandler(deps Dependencies) *CharactersHandler {
	return &CharactersHandler{deps: deps}
}

// HandleGetCharacters handles
// GET /api/characters?sort_by=K&order=O&refresh=B requests.
func (h *CharactersHandler) HandleGetCharacters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()

	sortBy := q.Get("sort_by")
	if sortBy == "" {
		sortBy = service.SortByName
	}
	if !service.ValidSortBy(sortBy) {
		writeError(w, http.StatusBadRequest, "invalid sort_by: "+sortBy)
		return
	}

	order := q.Get("order")
	if order == "" {
		order = service.OrderAsc
	}
	if !service.ValidOrder(order) {
		writeError(w, http.StatusBadRequest, "invalid order: "+order)
		return
	}

	refresh := false
	if raw := q.Get("refresh"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid refresh: "+raw)
			return
		}
		refresh = parsed
	}

	chars, err := h.deps.Characters(r.Context(), sortBy, order, refresh)
	if err != nil {
		status := upstreamStatus(err)
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chars)
}

// upstreamStatus maps refresh failures onto 5xx statuses.
func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, swapi.ErrUnreachable):
		return http.StatusGatewayTimeout
	case errors.Is(err, swapi.ErrBadStatus), errors.Is(err, swapi.ErrMalformedPayload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
