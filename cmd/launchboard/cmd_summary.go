package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Describe the loaded dataset and the payload slider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := a.board()
			if err != nil {
				return err
			}

			summary, err := board.Summary()
			if err != nil {
				return err
			}
			slider := board.Slider()

			view := tableView{
				title:   fmt.Sprintf("%s: %d records, payload [%g, %g] kg, slider [%g, %g] step %g", summary.Source, summary.Records, summary.MinPayload, summary.MaxPayload, slider.Min, slider.Max, slider.Step),
				header:  table.Row{"Launch Site", "Successes"},
				footer:  table.Row{"Total", summary.TotalSuccesses},
				numeric: []int{2},
			}
			for _, agg := range summary.Aggregates {
				view.rows = append(view.rows, table.Row{agg.LaunchSite, agg.TotalSuccessCount})
			}

			out := struct {
				Summary any `json:"summary"`
				Slider  any `json:"slider"`
			}{summary, slider}
			return a.render(cmd.OutOrStdout(), out, view)
		},
	}
}
