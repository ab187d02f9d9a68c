package main

import (
	"github.com/okian/ktready/internal/domain/types"
	"github.com/spf13/cobra"
)

func newRecordsCmd(g *globalFlags) *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Show readiness per team and country",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.start(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			s, err := sel.resolve(cmd, svc)
			if err != nil {
				return err
			}
			records, err := svc.Records(cmd.Context(), s)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.output, records, func(t *table) {
				writeRecords(t, records)
			})
		},
	}
	sel.bind(cmd, false)
	return cmd
}

func newSummaryCmd(g *globalFlags) *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show aggregate readiness for a selection",
		Long: `Show the record count, mean progress, gap ranking and group averages
for the selection. With --focus the statistics cover one country; a focus
outside the selection falls back to the whole region.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.start(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			s, err := sel.resolve(cmd, svc)
			if err != nil {
				return err
			}
			report, err := svc.Summary(cmd.Context(), s)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.output, report, func(t *table) {
				writeReport(t, report)
			})
		},
	}
	sel.bind(cmd, true)
	return cmd
}

func newTeamsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List transferred and pending teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.start(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			c, err := svc.Teams(cmd.Context())
			if err != nil {
				return err
			}
			view := types.NewTeamsView(c)
			return render(cmd.OutOrStdout(), g.output, view, func(t *table) {
				writeTeams(t, view)
			})
		},
	}
}

func newCountriesCmd(g *globalFlags) *cobra.Command {
	sel := &selectionFlags{}
	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List countries covered by the selected teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.start(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			countries, err := svc.Countries(cmd.Context(), flagSet(cmd, "team", sel.teams))
			if err != nil {
				return err
			}
			names := countries.Sorted()
			return render(cmd.OutOrStdout(), g.output, names, func(t *table) {
				t.row("COUNTRY")
				for _, n := range names {
					t.row(n)
				}
			})
		},
	}
	cmd.Flags().StringSliceVar(&sel.teams, "team", nil, "teams to include (repeatable or comma separated)")
	return cmd
}

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset for configuration errors",
		Long: `Load the dataset and verify every vector matches the checklist length,
every flag is 0 or 1 and every country has a centroid. Exits with status 2
on a configuration error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := g.start(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			stats := svc.GetStats()
			out := map[string]interface{}{"valid": true, "records": stats["records"], "policy": stats["policy"]}
			return render(cmd.OutOrStdout(), g.output, out, func(t *table) {
				t.row("VALID", "RECORDS", "POLICY")
				t.row("yes", stats["records"], stats["policy"])
			})
		},
	}
}
