// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// MarkersHandler handles map marker requests.
type MarkersHandler struct {
	deps Dependencies
}

// NewMarkersHandler creates a new markers handler.
func NewMarkersHandler(deps Dependencies) *MarkersHandler {
	return &MarkersHandler{deps: deps}
}

// HandleGetMarkers handles GET /markers?team=..&country=.. requests.
func (h *MarkersHandler) HandleGetMarkers(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_markers"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sel, err := selection(r, h.deps)
	if err != nil {
		writeSelectionError(w, op, err)
		return
	}
	markers, err := h.deps.Markers(r.Context(), sel)
	if err != nil {
		writeDependencyError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, markers)
}
