package readiness

import (
	"fmt"
	"sort"
	"strings"
)

// percentScale converts a completion ratio to a percentage.
const percentScale = 100

// Progress converts done-of-total into an integer percentage under policy.
// total must be positive.
func Progress(done, total int, policy Policy) int {
	if policy == Truncate {
		return percentScale * done / total
	}
	// Integer form of floor(100*done/total + 0.5).
	return (2*percentScale*done + total) / (2 * total)
}

// ParseFlags converts raw 0/1 flags into a Vector. Any other value is a
// configuration error attributed to team and country.
func ParseFlags(team, country string, flags []int) (Vector, error) {
	v := make(Vector, len(flags))
	for i, f := range flags {
		switch f {
		case 0:
		case 1:
			v[i] = true
		default:
			return nil, &ConfigError{
				Team:    team,
				Country: country,
				Reason:  fmt.Sprintf("flag %d has value %d; want 0 or 1", i, f),
			}
		}
	}
	return v, nil
}

// ValidateTasks checks that the checklist is non-empty and has unique,
// non-blank names.
func ValidateTasks(tasks Tasks) error {
	if len(tasks) == 0 {
		return &ConfigError{Reason: "task list is empty"}
	}
	seen := make(map[string]int, len(tasks))
	for i, name := range tasks {
		if strings.TrimSpace(name) == "" {
			return &ConfigError{Reason: fmt.Sprintf("task %d has a blank name", i)}
		}
		if j, dup := seen[name]; dup {
			return &ConfigError{Reason: fmt.Sprintf("task %q appears at %d and %d", name, j, i)}
		}
		seen[name] = i
	}
	return nil
}

// Validate checks every vector in d against tasks. The first problem found,
// in team then country order, is returned.
func Validate(d Dataset, tasks Tasks) error {
	if err := ValidateTasks(tasks); err != nil {
		return err
	}
	for _, team := range d.Teams() {
		if strings.TrimSpace(team) == "" {
			return &ConfigError{Reason: "blank team name"}
		}
		countries := d[team]
		for _, country := range sortedKeys(countries) {
			if strings.TrimSpace(country) == "" {
				return &ConfigError{Team: team, Reason: "blank country name"}
			}
			if got := len(countries[country]); got != len(tasks) {
				return &ConfigError{
					Team:    team,
					Country: country,
					Reason:  fmt.Sprintf("vector has %d flags; want %d", got, len(tasks)),
				}
			}
		}
	}
	return nil
}

// ComputeRecords derives one Record per (team, country) pair in d, ordered
// by team then country name. A malformed dataset yields no records and a
// *ConfigError; vectors are never truncated or padded.
func ComputeRecords(d Dataset, tasks Tasks, opts ...Option) ([]Record, error) {
	o := computeOptions{policy: Round}
	for _, opt := range opts {
		opt(&o)
	}
	if err := Validate(d, tasks); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(d))
	for _, team := range d.Teams() {
		countries := d[team]
		for _, country := range sortedKeys(countries) {
			records = append(records, newRecord(len(records), team, country, countries[country], tasks, o.policy))
		}
	}
	return records, nil
}

func newRecord(idx int, team, country string, v Vector, tasks Tasks, policy Policy) Record {
	r := Record{
		Index:    idx,
		Team:     team,
		Country:  country,
		Progress: Progress(v.Done(), len(v), policy),
		Pending:  make([]string, 0, len(v)-v.Done()),
		Done:     make([]string, 0, v.Done()),
	}
	for i, flag := range v {
		if flag {
			r.Done = append(r.Done, tasks[i])
		} else {
			r.Pending = append(r.Pending, tasks[i])
		}
	}
	return r
}

// FilterRecords keeps records whose team is in teams and whose country is in
// countries, preserving order. Empty selections keep nothing.
func FilterRecords(records []Record, teams, countries Set) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if teams.Has(r.Team) && countries.Has(r.Country) {
			out = append(out, r)
		}
	}
	return out
}

// RecordsForCountry keeps the records of one country, preserving order.
func RecordsForCountry(records []Record, country string) []Record {
	out := make([]Record, 0)
	for _, r := range records {
		if r.Country == country {
			out = append(out, r)
		}
	}
	return out
}

// SortRecords returns a copy of records ordered by team then country.
func SortRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// ClassifyTeams splits the teams of d into transferred (at least one
// country) and pending (none). Every team lands in exactly one set.
func ClassifyTeams(d Dataset) Classification {
	c := Classification{Transferred: Set{}, Pending: Set{}}
	for team, countries := range d {
		if len(countries) > 0 {
			c.Transferred.Add(team)
		} else {
			c.Pending.Add(team)
		}
	}
	return c
}

// ValidCountriesForTeams returns the countries present under at least one
// of the selected teams. Unknown teams contribute nothing.
func ValidCountriesForTeams(d Dataset, teams Set) Set {
	out := Set{}
	for team := range teams {
		for country := range d[team] {
			out.Add(country)
		}
	}
	return out
}

func sortedKeys(m map[string]Vector) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
