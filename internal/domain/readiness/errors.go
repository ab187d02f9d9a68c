package readiness

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrConfiguration marks malformed dataset configuration. It is never
	// returned for empty selections.
	ErrConfiguration = errors.New("readiness configuration error")
)

// ConfigError describes a single malformed dataset entry.
type ConfigError struct {
	Team    string
	Country string
	Reason  string
}

func (e *ConfigError) Error() string {
	switch {
	case e.Team != "" && e.Country != "":
		return fmt.Sprintf("%s: team %q country %q: %s", ErrConfiguration, e.Team, e.Country, e.Reason)
	case e.Team != "":
		return fmt.Sprintf("%s: team %q: %s", ErrConfiguration, e.Team, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", ErrConfiguration, e.Reason)
	}
}

// Unwrap lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
