package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tfkr-ae/launchboard/domain"
)

func newScatterCmd(a *app) *cobra.Command {
	var flags struct {
		site       string
		payloadMin float64
		payloadMax float64
	}

	cmd := &cobra.Command{
		Use:   "scatter",
		Short: "Show payload mass against launch outcome for a site or all sites",
		Long: "Show payload mass against launch outcome for a site or all sites.\n" +
			"The payload range only sets the displayed axis; every point of the site is listed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rng *domain.PayloadRange
			minSet := cmd.Flags().Changed("payload-min")
			maxSet := cmd.Flags().Changed("payload-max")
			if minSet != maxSet {
				return fmt.Errorf("--payload-min and --payload-max must be given together")
			}
			if minSet {
				rng = &domain.PayloadRange{Low: flags.payloadMin, High: flags.payloadMax}
			}

			board, err := a.board()
			if err != nil {
				return err
			}

			chart, err := board.PayloadScatter(flags.site, rng)
			if err != nil {
				return err
			}

			view := tableView{
				title:   fmt.Sprintf("%s [%g, %g] kg", chart.Title, chart.Range.Low, chart.Range.High),
				header:  table.Row{"Payload Mass (kg)", "Class", "Booster Version Category"},
				footer:  table.Row{"Points", len(chart.Points), ""},
				numeric: []int{1, 2},
			}
			for _, point := range chart.Points {
				view.rows = append(view.rows, table.Row{point.PayloadMassKg, point.OutcomeClass, point.BoosterVersionCategory})
			}
			return a.render(cmd.OutOrStdout(), chart, view)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.site, "site", string(domain.AllSites), "Launch site, or ALL")
	f.Float64Var(&flags.payloadMin, "payload-min", 0, "Low end of the displayed payload range in kg")
	f.Float64Var(&flags.payloadMax, "payload-max", 0, "High end of the displayed payload range in kg")
	return cmd
}
