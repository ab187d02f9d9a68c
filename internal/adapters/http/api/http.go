// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strings"

	service "github.com/okian/ktready/internal/app"
	"github.com/okian/ktready/internal/domain/geo"
	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/okian/ktready/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Tasks(ctx context.Context) (readiness.Tasks, error)
	Teams(ctx context.Context) (readiness.Classification, error)
	Countries(ctx context.Context, teams readiness.Set) (readiness.Set, error)
	Select(ctx context.Context, teams, countries readiness.Set, focus readiness.Focus) (readiness.Selection, error)
	Records(ctx context.Context, sel readiness.Selection) ([]readiness.Record, error)
	Summary(ctx context.Context, sel readiness.Selection) (types.Report, error)
	Markers(ctx context.Context, sel readiness.Selection) ([]geo.Marker, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	catalogHandler *CatalogHandler
	recordsHandler *RecordsHandler
	summaryHandler *SummaryHandler
	markersHandler *MarkersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		catalogHandler: NewCatalogHandler(deps),
		recordsHandler: NewRecordsHandler(deps),
		summaryHandler: NewSummaryHandler(deps),
		markersHandler: NewMarkersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
		s.statsHandler.addRoute(path)
	}
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/metrics", "metrics", s.healthHandler.HandleHealth)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/tasks", "tasks", s.catalogHandler.HandleTasks)
	route("/teams", "teams", s.catalogHandler.HandleTeams)
	route("/countries", "countries", s.catalogHandler.HandleCountries)
	route("/records", "records", s.recordsHandler.HandleGetRecords)
	route("/summary", "summary", s.summaryHandler.HandleGetSummary)
	route("/markers", "markers", s.markersHandler.HandleGetMarkers)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDependencyError maps service errors onto status codes. Malformed
// configuration is reported distinctly from an empty result.
func writeDependencyError(w http.ResponseWriter, op string, err error) {
	switch {
	case readiness.IsConfiguration(err):
		writeError(w, http.StatusInternalServerError, "configuration_error", Wrap(op, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// parseSet reads a repeatable, comma-separable query parameter. An absent
// key yields nil ("no constraint"); a present but blank key yields an empty set.
func parseSet(q url.Values, key string) readiness.Set {
	values, ok := q[key]
	if !ok {
		return nil
	}
	set := readiness.NewSet()
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				set.Add(part)
			}
		}
	}
	return set
}

// selection resolves the team/country/focus query of r. A focus naming a
// country absent from the dataset is ErrNotFound.
func selection(r *http.Request, deps Dependencies) (readiness.Selection, error) {
	q := r.URL.Query()
	if err := checkQuery(q, "team", "country", "focus"); err != nil {
		return readiness.Selection{}, err
	}
	if len(q["focus"]) > 1 {
		return readiness.Selection{}, NewKind("focus given more than once", ErrBadRequest)
	}
	focus := readiness.ParseFocus(q.Get("focus"))
	if !focus.IsRegion() {
		known, err := deps.Countries(r.Context(), nil)
		if err != nil {
			return readiness.Selection{}, err
		}
		if !known.Has(focus.Country) {
			return readiness.Selection{}, NewKind("focus "+focus.Country, ErrNotFound)
		}
	}
	return deps.Select(r.Context(), parseSet(q, "team"), parseSet(q, "country"), focus)
}

// checkQuery rejects parameters outside allowed.
func checkQuery(q url.Values, allowed ...string) error {
	for key := range q {
		if !slices.Contains(allowed, key) {
			return NewKind("unknown query parameter "+key, ErrBadRequest)
		}
	}
	return nil
}

// writeSelectionError distinguishes bad input and an unknown focus from
// dependency failures.
func writeSelectionError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	default:
		writeDependencyError(w, op, err)
	}
}
