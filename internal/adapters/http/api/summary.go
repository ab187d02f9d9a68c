// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// SummaryHandler handles aggregate requests.
type SummaryHandler struct {
	deps Dependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps Dependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary?team=..&country=..&focus=.. requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sel, err := selection(r, h.deps)
	if err != nil {
		writeSelectionError(w, op, err)
		return
	}
	report, err := h.deps.Summary(r.Context(), sel)
	if err != nil {
		writeDependencyError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
