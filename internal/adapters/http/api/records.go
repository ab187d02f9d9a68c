// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// RecordsHandler handles record requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleGetRecords handles GET /records?team=..&country=.. requests.
func (h *RecordsHandler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_records"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sel, err := selection(r, h.deps)
	if err != nil {
		writeSelectionError(w, op, err)
		return
	}
	records, err := h.deps.Records(r.Context(), sel)
	if err != nil {
		writeDependencyError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
