// Package types contains common types used across the application
package types

import "github.com/okian/ktready/internal/domain/readiness"

// Report is the aggregate view for one selection.
type Report struct {
	Focus           readiness.Focus          `json:"focus"`
	Summary         readiness.Summary        `json:"summary"`
	TeamAverages    []readiness.GroupAverage `json:"team_averages"`
	CountryAverages []readiness.GroupAverage `json:"country_averages"`
}

// TeamsView is the transfer classification as returned to clients.
type TeamsView struct {
	Transferred []string `json:"transferred"`
	Pending     []string `json:"pending"`
}

// NewTeamsView sorts a classification for display.
func NewTeamsView(c readiness.Classification) TeamsView {
	return TeamsView{
		Transferred: c.Transferred.Sorted(),
		Pending:     c.Pending.Sorted(),
	}
}
