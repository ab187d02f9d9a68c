// Package geo places readiness records on a map using fixed country centroids.
package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/okian/ktready/internal/domain/readiness"
)

// ErrMissingCoordinate reports a country with no centroid. It wraps
// readiness.ErrConfiguration so callers can treat it as bad configuration.
var ErrMissingCoordinate = fmt.Errorf("%w: missing coordinate", readiness.ErrConfiguration)

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether c lies within WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Catalog maps country name to its centroid.
type Catalog map[string]Coordinate

// Validate checks that every country has an in-range centroid.
func (c Catalog) Validate(countries []string) error {
	var missing []string
	for _, country := range countries {
		coord, ok := c[country]
		if !ok {
			missing = append(missing, country)
			continue
		}
		if !coord.Valid() {
			return fmt.Errorf("%w: country %q has out of range coordinate %v", readiness.ErrConfiguration, country, coord)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCoordinate, strings.Join(missing, ", "))
	}
	return nil
}

// Marker is a record positioned for display.
type Marker struct {
	Team     string  `json:"team"`
	Country  string  `json:"country"`
	Progress int     `json:"progress"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Pending  string  `json:"pending"`
}

// maxLat bounds marker latitude.
const maxLat = 90

// Place positions each record at its country centroid, shifting latitude by
// Index*jitter so records sharing a country do not overlap. The shifted
// latitude is clamped to [-90, 90].
func Place(records []readiness.Record, catalog Catalog, jitter float64) ([]Marker, error) {
	if jitter < 0 {
		return nil, errors.New("jitter must not be negative")
	}
	out := make([]Marker, 0, len(records))
	for _, r := range records {
		coord, ok := catalog[r.Country]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingCoordinate, r.Country)
		}
		out = append(out, Marker{
			Team:     r.Team,
			Country:  r.Country,
			Progress: r.Progress,
			Lat:      math.Max(-maxLat, math.Min(maxLat, coord.Lat+float64(r.Index)*jitter)),
			Lon:      coord.Lon,
			Pending:  strings.Join(r.Pending, ", "),
		})
	}
	return out, nil
}
