package readiness

import (
	"fmt"
	"strings"
)

// Policy selects how a completion ratio becomes an integer percentage.
type Policy int

const (
	// Round rounds to the nearest percent, halves away from zero.
	Round Policy = iota
	// Truncate drops the fractional percent.
	Truncate
)

func (p Policy) String() string {
	switch p {
	case Round:
		return "round"
	case Truncate:
		return "truncate"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy accepts "round" or "truncate" (case-insensitive); empty means Round.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "round":
		return Round, nil
	case "truncate", "trunc":
		return Truncate, nil
	default:
		return Round, fmt.Errorf("unknown progress policy: %s", s)
	}
}

// Option applies a configuration option to ComputeRecords.
type Option func(*computeOptions)

type computeOptions struct {
	policy Policy
}

// WithPolicy sets the progress rounding policy.
func WithPolicy(p Policy) Option {
	return func(o *computeOptions) {
		if p == Round || p == Truncate {
			o.policy = p
		}
	}
}
