package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/okian/ktready/internal/domain/geo"
	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/okian/ktready/pkg/metrics"
)

// Loader reads and validates a dataset.
//
// The YAML layout is:
//
//	tasks: [name, ...]
//	countries: {NAME: [lat, lon]}      # or {lat: .., lon: ..}
//	teams: {TEAM: {COUNTRY: [0|1, ...]}}  # TEAM: {} marks a pending team
type Loader struct {
	path               string
	raw                []byte
	requireCoordinates bool
}

// NewLoader creates a loader. Without WithPath or WithBytes it reads DefaultDataset.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{requireCoordinates: true}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads, decodes and validates the dataset. Malformed content yields an
// error wrapping readiness.ErrConfiguration; unreadable or unparsable input
// wraps ErrLoadDataset.
func (l *Loader) Load(ctx context.Context) (Snapshot, error) {
	start := time.Now()
	defer func() {
		metrics.RecordDatasetLoadDuration(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	b, err := l.bytes()
	if err != nil {
		return Snapshot{}, err
	}
	doc, err := yaml.Parser().Unmarshal(b)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: parse %s: %v", ErrLoadDataset, l.source(), err)
	}

	snap, err := decode(doc)
	if err != nil {
		metrics.RecordConfigurationError("dataset")
		return Snapshot{}, err
	}
	if err := readiness.Validate(snap.Dataset, snap.Tasks); err != nil {
		metrics.RecordConfigurationError("dataset")
		return Snapshot{}, err
	}
	if l.requireCoordinates {
		if err := snap.Catalog.Validate(snap.Dataset.Countries()); err != nil {
			metrics.RecordConfigurationError("coordinates")
			return Snapshot{}, err
		}
	}
	return snap, nil
}

func (l *Loader) bytes() ([]byte, error) {
	switch {
	case l.raw != nil:
		return l.raw, nil
	case l.path != "":
		b, err := file.Provider(l.path).ReadBytes()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrLoadDataset, l.path, err)
		}
		return b, nil
	default:
		return DefaultDataset, nil
	}
}

func (l *Loader) source() string {
	switch {
	case l.raw != nil:
		return "inline dataset"
	case l.path != "":
		return l.path
	default:
		return "embedded dataset"
	}
}

func decode(doc map[string]interface{}) (Snapshot, error) {
	snap := Snapshot{
		Dataset: readiness.Dataset{},
		Catalog: geo.Catalog{},
	}

	rawTasks, ok := doc["tasks"].([]interface{})
	if !ok {
		return Snapshot{}, &readiness.ConfigError{Reason: "tasks must be a list"}
	}
	for i, t := range rawTasks {
		name, ok := t.(string)
		if !ok {
			return Snapshot{}, &readiness.ConfigError{Reason: fmt.Sprintf("task %d is not a string", i)}
		}
		snap.Tasks = append(snap.Tasks, name)
	}

	countries, err := asMap(doc["countries"], "countries")
	if err != nil {
		return Snapshot{}, err
	}
	for name, raw := range countries {
		coord, err := decodeCoordinate(name, raw)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Catalog[name] = coord
	}

	teams, err := asMap(doc["teams"], "teams")
	if err != nil {
		return Snapshot{}, err
	}
	for team, raw := range teams {
		entries, err := asMap(raw, "team "+team)
		if err != nil {
			return Snapshot{}, err
		}
		vectors := make(map[string]readiness.Vector, len(entries))
		for country, rawFlags := range entries {
			flags, err := decodeFlags(team, country, rawFlags)
			if err != nil {
				return Snapshot{}, err
			}
			v, err := readiness.ParseFlags(team, country, flags)
			if err != nil {
				return Snapshot{}, err
			}
			vectors[country] = v
		}
		snap.Dataset[team] = vectors
	}
	return snap, nil
}

// asMap accepts a string-keyed mapping; a missing or null value is empty.
func asMap(v interface{}, what string) (map[string]interface{}, error) {
	switch m := v.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return m, nil
	default:
		return nil, &readiness.ConfigError{Reason: fmt.Sprintf("%s must be a mapping with string keys, got %T", what, v)}
	}
}

func decodeCoordinate(country string, v interface{}) (geo.Coordinate, error) {
	bad := func() (geo.Coordinate, error) {
		return geo.Coordinate{}, &readiness.ConfigError{
			Country: country,
			Reason:  "coordinate must be [lat, lon] or {lat, lon}",
		}
	}
	switch c := v.(type) {
	case []interface{}:
		if len(c) != 2 {
			return bad()
		}
		lat, ok1 := toFloat(c[0])
		lon, ok2 := toFloat(c[1])
		if !ok1 || !ok2 {
			return bad()
		}
		return geo.Coordinate{Lat: lat, Lon: lon}, nil
	case map[string]interface{}:
		lat, ok1 := toFloat(c["lat"])
		lon, ok2 := toFloat(c["lon"])
		if !ok1 || !ok2 {
			return bad()
		}
		return geo.Coordinate{Lat: lat, Lon: lon}, nil
	default:
		return bad()
	}
}

func decodeFlags(team, country string, v interface{}) ([]int, error) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, &readiness.ConfigError{Team: team, Country: country, Reason: "completion vector must be a list"}
	}
	flags := make([]int, len(list))
	for i, f := range list {
		n, ok := toInt(f)
		if !ok {
			return nil, &readiness.ConfigError{
				Team:    team,
				Country: country,
				Reason:  fmt.Sprintf("flag %d is not a number: %v", i, f),
			}
		}
		flags[i] = n
	}
	return flags, nil
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
