// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/okian/ktready/internal/domain/types"
)

// CatalogDependencies defines the interface for checklist, team and country lookups.
type CatalogDependencies interface {
	Tasks(ctx context.Context) (readiness.Tasks, error)
	Teams(ctx context.Context) (readiness.Classification, error)
	Countries(ctx context.Context, teams readiness.Set) (readiness.Set, error)
}

// CatalogHandler serves the filter options offered to clients.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleTasks handles GET /tasks requests.
func (h *CatalogHandler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_tasks"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	tasks, err := h.deps.Tasks(r.Context())
	if err != nil {
		writeDependencyError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// HandleTeams handles GET /teams requests.
func (h *CatalogHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teams"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	c, err := h.deps.Teams(r.Context())
	if err != nil {
		writeDependencyError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewTeamsView(c))
}

// HandleCountries handles GET /countries?team=A&team=B requests. The result
// always reflects the current team parameter.
func (h *CatalogHandler) HandleCountries(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_countries"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	if err := checkQuery(q, "team"); err != nil {
		writeSelectionError(w, op, err)
		return
	}
	countries, err := h.deps.Countries(r.Context(), parseSet(q, "team"))
	if err != nil {
		writeDependencyError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, countries.Sorted())
}
