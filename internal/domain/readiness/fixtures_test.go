package readiness_test

import "github.com/okian/ktready/internal/domain/readiness"

var checklist = readiness.Tasks{
	"Team Huddle",
	"Operational Calls",
	"Feedback/Incident",
	"QC",
	"SharePoint/Catalogue",
	"Unit Pricing",
	"MM",
	"KPIs",
}

func americas() readiness.Dataset {
	v := readiness.VectorOf
	return readiness.Dataset{
		"AP": {
			"CANADA": v(1, 1, 1, 1, 0, 0, 1, 1),
			"CHILE":  v(1, 0, 1, 1, 0, 0, 1, 1),
			"MEXICO": v(0, 0, 1, 0, 0, 0, 1, 1),
			"USA":    v(1, 1, 1, 1, 0, 0, 1, 1),
		},
		"VQH": {
			"CANADA": v(1, 1, 0, 1, 0, 0, 1, 0),
			"USA":    v(1, 1, 0, 1, 0, 0, 1, 0),
		},
		"Verification": {
			"CANADA": v(1, 1, 1, 1, 0, 1, 1, 1),
			"CHILE":  v(1, 1, 1, 1, 0, 1, 1, 1),
			"PERU":   v(1, 1, 1, 1, 0, 1, 1, 1),
			"PR":     v(1, 1, 1, 1, 0, 1, 1, 1),
			"USA":    v(1, 1, 1, 1, 0, 1, 1, 1),
		},
		"Cost Match": {"USA": v(1, 1, 1, 1, 0, 0, 1, 1)},
		"Claims":     {},
	}
}
