package readiness

import "strings"

// Focus is the scope the headline aggregate is computed over: the whole
// region (zero value) or a single country.
type Focus struct {
	Country string `json:"country,omitempty"`
}

// Region is the whole-region focus.
var Region = Focus{}

// ParseFocus maps "", "region" and "all" to Region; anything else names a
// country.
func ParseFocus(s string) Focus {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "region", "all":
		return Region
	}
	return Focus{Country: s}
}

// IsRegion reports whether f spans the whole region.
func (f Focus) IsRegion() bool { return f.Country == "" }

func (f Focus) String() string {
	if f.IsRegion() {
		return "region"
	}
	return f.Country
}

// FocusSummary aggregates records restricted to focus. A country with no
// records yields the empty Summary.
func FocusSummary(records []Record, tasks Tasks, focus Focus) Summary {
	if focus.IsRegion() {
		return Aggregate(records, tasks)
	}
	return Aggregate(RecordsForCountry(records, focus.Country), tasks)
}

// Selection is an explicit filter state. Views are recomputed from a
// Selection on every interaction instead of mutating shared filter state.
type Selection struct {
	Teams     Set
	Countries Set
	Focus     Focus
}

// SelectAll selects every transferred team and every country in d.
func SelectAll(d Dataset) Selection {
	teams := ClassifyTeams(d).Transferred
	return Selection{
		Teams:     teams,
		Countries: ValidCountriesForTeams(d, teams),
		Focus:     Region,
	}
}

// Reconcile drops countries no selected team covers and resets a focus
// that is no longer among the selected countries. The receiver is not modified.
func (s Selection) Reconcile(d Dataset) Selection {
	valid := ValidCountriesForTeams(d, s.Teams)
	countries := Set{}
	for c := range s.Countries {
		if valid.Has(c) {
			countries.Add(c)
		}
	}
	out := Selection{Teams: NewSet(s.Teams.Sorted()...), Countries: countries, Focus: s.Focus}
	if !out.Focus.IsRegion() && !countries.Has(out.Focus.Country) {
		out.Focus = Region
	}
	return out
}

// Apply filters records by the selection.
func (s Selection) Apply(records []Record) []Record {
	return FilterRecords(records, s.Teams, s.Countries)
}
