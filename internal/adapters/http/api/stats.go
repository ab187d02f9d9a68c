package api

import (
	"net/http"
	"sort"
)

// StatsProvider reports service state for monitoring.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves service state and the routes this server exposes.
type StatsHandler struct {
	statsProvider StatsProvider
	routes        []string
}

type statsResponse struct {
	Service map[string]interface{} `json:"service"`
	Routes  []string               `json:"routes"`
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{statsProvider: statsProvider}
}

func (h *StatsHandler) addRoute(path string) {
	h.routes = append(h.routes, path)
	sort.Strings(h.routes)
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Service: h.statsProvider.GetStats(),
		Routes:  h.routes,
	})
}
