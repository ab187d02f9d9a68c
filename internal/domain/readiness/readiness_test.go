package readiness_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/ktready/internal/domain/readiness"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProgress(t *testing.T) {
	Convey("Given completion counts", t, func() {
		Convey("When rounding", func() {
			So(readiness.Progress(6, 8, readiness.Round), ShouldEqual, 75)
			So(readiness.Progress(1, 8, readiness.Round), ShouldEqual, 13)
			So(readiness.Progress(5, 8, readiness.Round), ShouldEqual, 63)
			So(readiness.Progress(1, 3, readiness.Round), ShouldEqual, 33)
			So(readiness.Progress(2, 3, readiness.Round), ShouldEqual, 67)
		})

		Convey("When truncating", func() {
			So(readiness.Progress(1, 8, readiness.Truncate), ShouldEqual, 12)
			So(readiness.Progress(5, 8, readiness.Truncate), ShouldEqual, 62)
			So(readiness.Progress(2, 3, readiness.Truncate), ShouldEqual, 66)
		})

		Convey("Then every ratio matches round(100*k/N) and stays within [0, 100]", func() {
			for n := 1; n <= 16; n++ {
				for k := 0; k <= n; k++ {
					want := int(math.Round(100 * float64(k) / float64(n)))
					got := readiness.Progress(k, n, readiness.Round)
					So(got, ShouldEqual, want)
					So(got, ShouldBeBetweenOrEqual, 0, 100)
				}
			}
		})
	})
}

func TestParsePolicy(t *testing.T) {
	Convey("Given policy names", t, func() {
		p, err := readiness.ParsePolicy("")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, readiness.Round)

		p, err = readiness.ParsePolicy(" Truncate ")
		So(err, ShouldBeNil)
		So(p, ShouldEqual, readiness.Truncate)
		So(p.String(), ShouldEqual, "truncate")

		_, err = readiness.ParsePolicy("ceil")
		So(err, ShouldNotBeNil)
	})
}

func TestComputeRecords(t *testing.T) {
	Convey("Given the single AP/CANADA entry", t, func() {
		ds := readiness.Dataset{"AP": {"CANADA": readiness.VectorOf(1, 1, 1, 1, 0, 0, 1, 1)}}

		Convey("When computing records", func() {
			records, err := readiness.ComputeRecords(ds, checklist)

			Convey("Then it yields one record at 75%", func() {
				So(err, ShouldBeNil)
				want := []readiness.Record{{
					Index:    0,
					Team:     "AP",
					Country:  "CANADA",
					Progress: 75,
					Pending:  []string{"SharePoint/Catalogue", "Unit Pricing"},
					Done:     []string{"Team Huddle", "Operational Calls", "Feedback/Incident", "QC", "MM", "KPIs"},
				}}
				if diff := cmp.Diff(want, records); diff != "" {
					t.Errorf("records mismatch (-want +got):\n%s", diff)
				}
			})
		})
	})

	Convey("Given the americas dataset", t, func() {
		ds := americas()

		Convey("When computing records with the default policy", func() {
			records, err := readiness.ComputeRecords(ds, checklist)
			So(err, ShouldBeNil)

			Convey("Then there is one record per team/country pair and none for Claims", func() {
				So(len(records), ShouldEqual, 12)
				for _, r := range records {
					So(r.Team, ShouldNotEqual, "Claims")
				}
			})

			Convey("And records are ordered by team then country", func() {
				So(records[0].Team, ShouldEqual, "AP")
				So(records[0].Country, ShouldEqual, "CANADA")
				So(records[4].Team, ShouldEqual, "Cost Match")
				So(records[11].Team, ShouldEqual, "Verification")
				So(records[11].Country, ShouldEqual, "USA")
				for i, r := range records {
					So(r.Index, ShouldEqual, i)
				}
			})

			Convey("And pending and done partition the checklist in task order", func() {
				for _, r := range records {
					So(len(r.Pending)+len(r.Done), ShouldEqual, len(checklist))
					seen := readiness.NewSet(r.Pending...)
					for _, d := range r.Done {
						So(seen.Has(d), ShouldBeFalse)
						seen.Add(d)
					}
					So(seen.Len(), ShouldEqual, len(checklist))
					So(inTaskOrder(r.Pending), ShouldBeTrue)
					So(inTaskOrder(r.Done), ShouldBeTrue)
				}
			})

			Convey("And half percentages round up", func() {
				So(records[1].Country, ShouldEqual, "CHILE")
				So(records[1].Progress, ShouldEqual, 63)
				So(records[2].Progress, ShouldEqual, 38)
				So(records[7].Progress, ShouldEqual, 88)
			})
		})

		Convey("When computing records with truncation", func() {
			records, err := readiness.ComputeRecords(ds, checklist, readiness.WithPolicy(readiness.Truncate))
			So(err, ShouldBeNil)
			So(records[1].Progress, ShouldEqual, 62)
			So(records[2].Progress, ShouldEqual, 37)
			So(records[7].Progress, ShouldEqual, 87)
		})

		Convey("When computing twice", func() {
			a, _ := readiness.ComputeRecords(ds, checklist)
			b, _ := readiness.ComputeRecords(ds, checklist)
			So(cmp.Diff(a, b), ShouldBeEmpty)
		})
	})

	Convey("Given a vector shorter than the checklist", t, func() {
		ds := readiness.Dataset{
			"AP":  {"CANADA": readiness.VectorOf(1, 1, 1, 1, 0, 0, 1, 1)},
			"VQH": {"USA": readiness.VectorOf(1, 1, 0)},
		}

		Convey("When computing records", func() {
			records, err := readiness.ComputeRecords(ds, checklist)

			Convey("Then it refuses with a configuration error and no records", func() {
				So(records, ShouldBeNil)
				So(errors.Is(err, readiness.ErrConfiguration), ShouldBeTrue)
				var cfgErr *readiness.ConfigError
				So(errors.As(err, &cfgErr), ShouldBeTrue)
				So(cfgErr.Team, ShouldEqual, "VQH")
				So(cfgErr.Country, ShouldEqual, "USA")
				So(err.Error(), ShouldContainSubstring, "want 8")
			})
		})
	})

	Convey("Given a malformed checklist", t, func() {
		Convey("When it is empty", func() {
			_, err := readiness.ComputeRecords(readiness.Dataset{}, nil)
			So(readiness.IsConfiguration(err), ShouldBeTrue)
		})

		Convey("When it repeats a task", func() {
			_, err := readiness.ComputeRecords(readiness.Dataset{}, readiness.Tasks{"QC", "MM", "QC"})
			So(readiness.IsConfiguration(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `"QC"`)
		})

		Convey("When a name is blank", func() {
			_, err := readiness.ComputeRecords(readiness.Dataset{}, readiness.Tasks{"QC", " "})
			So(readiness.IsConfiguration(err), ShouldBeTrue)
		})
	})

	Convey("Given an empty dataset with a valid checklist", t, func() {
		records, err := readiness.ComputeRecords(readiness.Dataset{}, checklist)
		So(err, ShouldBeNil)
		So(records, ShouldBeEmpty)
	})
}

func TestParseFlags(t *testing.T) {
	Convey("Given raw flags", t, func() {
		Convey("When all are 0 or 1", func() {
			v, err := readiness.ParseFlags("AP", "USA", []int{1, 0, 1})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, readiness.Vector{true, false, true})
			So(v.Done(), ShouldEqual, 2)
		})

		Convey("When one is out of range", func() {
			_, err := readiness.ParseFlags("AP", "USA", []int{1, 2})
			So(readiness.IsConfiguration(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "flag 1 has value 2")
		})
	})
}

func TestFilterRecords(t *testing.T) {
	Convey("Given the americas records", t, func() {
		records, err := readiness.ComputeRecords(americas(), checklist)
		So(err, ShouldBeNil)

		Convey("When filtering by team and country", func() {
			teams := readiness.NewSet("AP", "Verification")
			countries := readiness.NewSet("USA", "CHILE")
			got := readiness.FilterRecords(records, teams, countries)

			Convey("Then only matching pairs survive in input order", func() {
				So(len(got), ShouldEqual, 4)
				So([]string{got[0].Team, got[0].Country}, ShouldResemble, []string{"AP", "CHILE"})
				So([]string{got[1].Team, got[1].Country}, ShouldResemble, []string{"AP", "USA"})
				So([]string{got[2].Team, got[2].Country}, ShouldResemble, []string{"Verification", "CHILE"})
				So([]string{got[3].Team, got[3].Country}, ShouldResemble, []string{"Verification", "USA"})
			})

			Convey("And filtering again is a no-op", func() {
				again := readiness.FilterRecords(got, teams, countries)
				So(cmp.Diff(got, again), ShouldBeEmpty)
			})
		})

		Convey("When a selection is empty", func() {
			So(readiness.FilterRecords(records, readiness.NewSet(), readiness.NewSet("USA")), ShouldBeEmpty)
			So(readiness.FilterRecords(records, readiness.NewSet("AP"), nil), ShouldBeEmpty)
		})
	})
}

func TestRecordsForCountryAndSort(t *testing.T) {
	Convey("Given the americas records", t, func() {
		records, _ := readiness.ComputeRecords(americas(), checklist)

		Convey("When drilling into CANADA", func() {
			got := readiness.RecordsForCountry(records, "CANADA")
			So(len(got), ShouldEqual, 3)
			for _, r := range got {
				So(r.Country, ShouldEqual, "CANADA")
			}
		})

		Convey("When sorting a reversed copy", func() {
			reversed := make([]readiness.Record, len(records))
			for i, r := range records {
				reversed[len(records)-1-i] = r
			}
			So(cmp.Diff(records, readiness.SortRecords(reversed)), ShouldBeEmpty)
			So(reversed[0].Team, ShouldEqual, "Verification")
		})
	})
}

func TestClassifyTeams(t *testing.T) {
	Convey("Given the americas dataset", t, func() {
		ds := americas()
		c := readiness.ClassifyTeams(ds)

		Convey("Then Claims is pending and never transferred", func() {
			So(c.Pending.Has("Claims"), ShouldBeTrue)
			So(c.Transferred.Has("Claims"), ShouldBeFalse)
		})

		Convey("And the two sets partition every team", func() {
			So(c.Transferred.Len()+c.Pending.Len(), ShouldEqual, len(ds))
			for team := range ds {
				So(c.Transferred.Has(team) != c.Pending.Has(team), ShouldBeTrue)
			}
			So(c.Transferred.Sorted(), ShouldResemble, []string{"AP", "Cost Match", "VQH", "Verification"})
		})
	})

	Convey("Given an empty dataset", t, func() {
		c := readiness.ClassifyTeams(readiness.Dataset{})
		So(c.Transferred.Len(), ShouldEqual, 0)
		So(c.Pending.Len(), ShouldEqual, 0)
	})
}

func TestValidCountriesForTeams(t *testing.T) {
	Convey("Given the americas dataset", t, func() {
		ds := americas()

		Convey("When selecting VQH", func() {
			got := readiness.ValidCountriesForTeams(ds, readiness.NewSet("VQH"))
			So(got.Sorted(), ShouldResemble, []string{"CANADA", "USA"})
		})

		Convey("When selecting a pending or unknown team", func() {
			So(readiness.ValidCountriesForTeams(ds, readiness.NewSet("Claims", "Nobody")).Len(), ShouldEqual, 0)
		})

		Convey("Then enlarging the team selection never shrinks the result", func() {
			teams := ds.Teams()
			for mask := 0; mask < 1<<len(teams); mask++ {
				small := readiness.NewSet()
				for i, team := range teams {
					if mask&(1<<i) != 0 {
						small.Add(team)
					}
				}
				smallCountries := readiness.ValidCountriesForTeams(ds, small)
				for _, extra := range teams {
					large := readiness.NewSet(append(small.Sorted(), extra)...)
					largeCountries := readiness.ValidCountriesForTeams(ds, large)
					for c := range smallCountries {
						So(largeCountries.Has(c), ShouldBeTrue)
					}
				}
			}
		})
	})
}

func inTaskOrder(names []string) bool {
	last := -1
	for _, n := range names {
		i := checklist.Index(n)
		if i <= last {
			return false
		}
		last = i
	}
	return true
}
