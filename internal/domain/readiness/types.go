// Package readiness derives knowledge transfer readiness views from
// per-team, per-country task completion vectors.
//
// All functions are pure: they never mutate their inputs and a given input
// always yields the same output.
package readiness

import "sort"

// Tasks is the ordered checklist shared by every completion vector.
// A task's identity is its position.
type Tasks []string

// Index returns the position of name in the checklist, or -1.
func (t Tasks) Index(name string) int {
	for i, n := range t {
		if n == name {
			return i
		}
	}
	return -1
}

// Vector is a positional completion vector, one flag per task.
type Vector []bool

// Done returns the number of completed tasks.
func (v Vector) Done() int {
	n := 0
	for _, f := range v {
		if f {
			n++
		}
	}
	return n
}

// VectorOf builds a Vector from 0/1 flags. Any non-zero value counts as done;
// use ParseFlags when input must be validated.
func VectorOf(flags ...int) Vector {
	v := make(Vector, len(flags))
	for i, f := range flags {
		v[i] = f != 0
	}
	return v
}

// Dataset maps team -> country -> completion vector. A team mapped to an
// empty (or nil) country map has not been transferred yet.
type Dataset map[string]map[string]Vector

// Teams returns all team names in sorted order.
func (d Dataset) Teams() []string {
	out := make([]string, 0, len(d))
	for team := range d {
		out = append(out, team)
	}
	sort.Strings(out)
	return out
}

// Countries returns every country referenced by any team, sorted.
func (d Dataset) Countries() []string {
	set := Set{}
	for _, countries := range d {
		for c := range countries {
			set.Add(c)
		}
	}
	return set.Sorted()
}

// Record is the derived readiness of one (team, country) pair.
type Record struct {
	Index    int      `json:"index"`
	Team     string   `json:"team"`
	Country  string   `json:"country"`
	Progress int      `json:"progress"`
	Pending  []string `json:"pending"`
	Done     []string `json:"done"`
}

// TaskCount pairs a task with the number of records where it is pending.
type TaskCount struct {
	Task  string  `json:"task"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Summary aggregates a record sequence. The zero value is the sentinel for
// an empty sequence: Records == 0, MeanProgress == 0, no gaps.
type Summary struct {
	Records          int            `json:"records"`
	MeanProgress     float64        `json:"mean_progress"`
	PendingFrequency map[string]int `json:"pending_frequency"`
	MostCommonGap    string         `json:"most_common_gap,omitempty"`
	Gaps             []TaskCount    `json:"gaps"`
	ActiveRegions    int            `json:"active_regions"`
}

// Empty reports whether the summary was computed over no records.
func (s Summary) Empty() bool { return s.Records == 0 }

// GroupAverage is the mean progress of the records sharing a team or country.
type GroupAverage struct {
	Name         string  `json:"name"`
	Records      int     `json:"records"`
	MeanProgress float64 `json:"mean_progress"`
}

// Classification partitions teams by transfer state.
type Classification struct {
	Transferred Set `json:"transferred"`
	Pending     Set `json:"pending"`
}
