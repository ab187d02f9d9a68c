package main

import (
	"context"
	"fmt"
	"strings"

	service "github.com/okian/ktready/internal/app"
	"github.com/okian/ktready/internal/domain/readiness"
	"github.com/okian/ktready/pkg/logger"
	"github.com/spf13/cobra"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	dataset            string
	policy             string
	requireCoordinates bool
	output             string
	verbose            bool
}

// selectionFlags narrow a view to teams, countries and a focus.
type selectionFlags struct {
	teams     []string
	countries []string
	focus     string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "ktctl",
		Short: "Inspect knowledge transfer readiness",
		Long: `ktctl reads a readiness dataset and prints derived views.

Without --dataset the embedded Americas dataset is used.

Available subcommands:
  records   - Per team/country readiness and pending tasks
  summary   - Aggregate statistics for a selection
  teams     - Transferred and pending teams
  countries - Countries covered by the selected teams
  validate  - Check a dataset and report configuration errors`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := readiness.ParsePolicy(g.policy); err != nil {
				return err
			}
			switch g.output {
			case outputTable, outputJSON:
			default:
				return fmt.Errorf("unknown output format %q (want %s or %s)", g.output, outputTable, outputJSON)
			}
			if g.verbose {
				_ = logger.SetLevelString("debug")
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.dataset, "dataset", "", "path to a YAML dataset (default: embedded)")
	pf.StringVar(&g.policy, "policy", readiness.Round.String(), "progress rounding: round or truncate")
	pf.BoolVar(&g.requireCoordinates, "require-coordinates", true, "fail when a country has no centroid")
	pf.StringVarP(&g.output, "output", "o", outputTable, "output format: table or json")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "log dataset loading")

	root.AddCommand(
		newRecordsCmd(g),
		newSummaryCmd(g),
		newTeamsCmd(g),
		newCountriesCmd(g),
		newValidateCmd(g),
	)
	return root
}

// start loads the dataset described by g.
func (g *globalFlags) start(ctx context.Context) (*service.Service, error) {
	policy, err := readiness.ParsePolicy(g.policy)
	if err != nil {
		return nil, err
	}
	svc := service.New(
		service.WithDatasetPath(g.dataset),
		service.WithPolicy(policy),
		service.WithRequireCoordinates(g.requireCoordinates),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *selectionFlags) bind(cmd *cobra.Command, withFocus bool) {
	f := cmd.Flags()
	f.StringSliceVar(&s.teams, "team", nil, "teams to include (repeatable or comma separated; empty selects none)")
	f.StringSliceVar(&s.countries, "country", nil, "countries to include (repeatable or comma separated; empty selects none)")
	if withFocus {
		f.StringVar(&s.focus, "focus", "", "country to focus on (default: whole region)")
	}
}

// resolve turns the flags into a reconciled selection. An unset flag selects
// everything; a flag set to "" selects nothing.
func (s *selectionFlags) resolve(cmd *cobra.Command, svc *service.Service) (readiness.Selection, error) {
	ctx := cmd.Context()
	focus := readiness.ParseFocus(s.focus)
	if !focus.IsRegion() {
		known, err := svc.Countries(ctx, nil)
		if err != nil {
			return readiness.Selection{}, err
		}
		if !known.Has(focus.Country) {
			return readiness.Selection{}, fmt.Errorf("unknown focus country %q", focus.Country)
		}
	}
	return svc.Select(ctx, flagSet(cmd, "team", s.teams), flagSet(cmd, "country", s.countries), focus)
}

func flagSet(cmd *cobra.Command, name string, values []string) readiness.Set {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	set := readiness.NewSet()
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set.Add(v)
		}
	}
	return set
}
