// Package service provides the readiness service that implements the
// dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/ktready/internal/adapters/repository"
	"github.com/okian/ktready/internal/domain/geo"
	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/okian/ktready/internal/domain/types"
	"github.com/okian/ktready/pkg/logger"
	"github.com/okian/ktready/pkg/metrics"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted = errors.New("service not started")
)

// View names used for recompute metrics.
const (
	viewRecords   = "records"
	viewSummary   = "summary"
	viewTeams     = "teams"
	viewCountries = "countries"
	viewMarkers   = "markers"
)

// Service serves derived readiness views over an immutable dataset.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	datasetPath        string
	dataset            []byte
	requireCoordinates bool
	policy             readiness.Policy
	jitter             float64

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDatasetPath loads the dataset from a YAML file.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithDataset loads the dataset from raw YAML.
func WithDataset(b []byte) Option {
	return func(s *Service) {
		s.dataset = b
	}
}

// WithRequireCoordinates toggles the centroid check at load time.
func WithRequireCoordinates(require bool) Option {
	return func(s *Service) {
		s.requireCoordinates = require
	}
}

// WithPolicy sets the progress rounding policy.
func WithPolicy(p readiness.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithMarkerJitter sets the per-record latitude offset for markers.
func WithMarkerJitter(jitter float64) Option {
	return func(s *Service) {
		if jitter >= 0 {
			s.jitter = jitter
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		requireCoordinates: true,
		policy:             readiness.Round,
		jitter:             0.2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads and validates the dataset. A malformed dataset fails fast with
// an error wrapping readiness.ErrConfiguration.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "loading readiness dataset", logger.String("path", s.datasetPath))

	opts := []repository.Option{repository.WithRequireCoordinates(s.requireCoordinates)}
	switch {
	case s.dataset != nil:
		opts = append(opts, repository.WithBytes(s.dataset))
	case s.datasetPath != "":
		opts = append(opts, repository.WithPath(s.datasetPath))
	}
	snap, err := repository.NewLoader(opts...).Load(ctx)
	if err != nil {
		s.logger.Error(ctx, "dataset rejected", logger.Error(err))
		return err
	}

	records, err := readiness.ComputeRecords(snap.Dataset, snap.Tasks, readiness.WithPolicy(s.policy))
	if err != nil {
		s.logger.Error(ctx, "dataset rejected", logger.Error(err))
		return err
	}

	s.store = repository.NewMemoryStore(snap)
	s.started = true
	classes := readiness.ClassifyTeams(snap.Dataset)
	publishDatasetMetrics(records, snap.Tasks, classes)

	s.logger.Info(ctx, "readiness service started",
		logger.Int("tasks", len(snap.Tasks)),
		logger.Int("records", len(records)),
		logger.Strings("transferred", classes.Transferred.Sorted()),
		logger.Strings("pending", classes.Pending.Sorted()),
		logger.String("policy", s.policy.String()),
		logger.Bool("require_coordinates", s.requireCoordinates),
	)
	return nil
}

// Stop releases the dataset.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.store = nil
	s.started = false
	metrics.ResetReadiness()
	s.logger.Info(context.Background(), "readiness service stopped")
}

func publishDatasetMetrics(records []readiness.Record, tasks readiness.Tasks, classes readiness.Classification) {
	metrics.ResetReadiness()
	metrics.UpdateDatasetShape(len(records), classes.Transferred.Len(), classes.Pending.Len())
	for _, r := range records {
		metrics.UpdatePairProgress(r.Team, r.Country, r.Progress)
	}
	summary := readiness.Aggregate(records, tasks)
	for _, g := range summary.Gaps {
		metrics.UpdateTaskPending(g.Task, g.Count)
	}
	metrics.UpdateMeanProgress(summary.MeanProgress)
}

// snapshot returns a private copy of the dataset.
func (s *Service) snapshot(ctx context.Context) (repository.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return repository.Snapshot{}, ErrNotStarted
	}
	return s.store.Snapshot(ctx), nil
}

func observe(view string, start time.Time) {
	metrics.RecordRecompute(view, float64(time.Since(start).Microseconds())/1000)
}

// Tasks returns the ordered checklist.
func (s *Service) Tasks(ctx context.Context) (readiness.Tasks, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Tasks, nil
}

// Teams classifies every configured team.
func (s *Service) Teams(ctx context.Context) (readiness.Classification, error) {
	defer observe(viewTeams, time.Now())
	snap, err := s.snapshot(ctx)
	if err != nil {
		return readiness.Classification{}, err
	}
	return readiness.ClassifyTeams(snap.Dataset), nil
}

// Countries returns the countries covered by teams. A nil set means every
// transferred team.
func (s *Service) Countries(ctx context.Context, teams readiness.Set) (readiness.Set, error) {
	defer observe(viewCountries, time.Now())
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = readiness.ClassifyTeams(snap.Dataset).Transferred
	}
	return readiness.ValidCountriesForTeams(snap.Dataset, teams), nil
}

// Select resolves a selection against the dataset. A nil teams set selects
// every transferred team; a nil countries set selects every country those
// teams cover. Non-nil empty sets stay empty. Countries outside the team
// selection and a stale focus are dropped.
func (s *Service) Select(ctx context.Context, teams, countries readiness.Set, focus readiness.Focus) (readiness.Selection, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return readiness.Selection{}, err
	}
	return resolve(snap.Dataset, teams, countries, focus), nil
}

func resolve(d readiness.Dataset, teams, countries readiness.Set, focus readiness.Focus) readiness.Selection {
	if teams == nil {
		teams = readiness.ClassifyTeams(d).Transferred
	}
	if countries == nil {
		countries = readiness.ValidCountriesForTeams(d, teams)
	}
	return readiness.Selection{Teams: teams, Countries: countries, Focus: focus}.Reconcile(d)
}

// Records recomputes the records matching sel, ordered by team then country.
func (s *Service) Records(ctx context.Context, sel readiness.Selection) ([]readiness.Record, error) {
	defer observe(viewRecords, time.Now())
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return s.records(snap, sel)
}

func (s *Service) records(snap repository.Snapshot, sel readiness.Selection) ([]readiness.Record, error) {
	all, err := readiness.ComputeRecords(snap.Dataset, snap.Tasks, readiness.WithPolicy(s.policy))
	if err != nil {
		return nil, err
	}
	return readiness.SortRecords(sel.Apply(all)), nil
}

// Summary aggregates the records matching sel under its focus.
func (s *Service) Summary(ctx context.Context, sel readiness.Selection) (types.Report, error) {
	defer observe(viewSummary, time.Now())
	snap, err := s.snapshot(ctx)
	if err != nil {
		return types.Report{}, err
	}
	records, err := s.records(snap, sel)
	if err != nil {
		return types.Report{}, err
	}
	return types.Report{
		Focus:           sel.Focus,
		Summary:         readiness.FocusSummary(records, snap.Tasks, sel.Focus),
		TeamAverages:    readiness.TeamAverages(records),
		CountryAverages: readiness.CountryAverages(records),
	}, nil
}

// Markers positions the records matching sel on the map.
func (s *Service) Markers(ctx context.Context, sel readiness.Selection) ([]geo.Marker, error) {
	defer observe(viewMarkers, time.Now())
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	all, err := readiness.ComputeRecords(snap.Dataset, snap.Tasks, readiness.WithPolicy(s.policy))
	if err != nil {
		return nil, err
	}
	// Place on the unfiltered index so a marker does not move when filters change.
	return geo.Place(readiness.SortRecords(sel.Apply(all)), snap.Catalog, s.jitter)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"policy":  s.policy.String(),
	}
	if s.started {
		stats["records"] = s.store.Count(context.Background())
	}
	return stats
}
