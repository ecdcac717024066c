package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tfkr-ae/launchboard/domain"
)

func newPieCmd(a *app) *cobra.Command {
	var site string

	cmd := &cobra.Command{
		Use:   "pie",
		Short: "Show the successful launch share for a site or all sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := a.board()
			if err != nil {
				return err
			}

			chart, err := board.SuccessShare(site)
			if err != nil {
				return err
			}

			view := tableView{
				title:   chart.Title,
				header:  table.Row{"Category", "Count"},
				footer:  table.Row{"Total", chart.Series.Total()},
				numeric: []int{2},
			}
			for _, category := range chart.Series.Categories {
				view.rows = append(view.rows, table.Row{category.Label, category.Count})
			}
			return a.render(cmd.OutOrStdout(), chart, view)
		},
	}

	cmd.Flags().StringVar(&site, "site", string(domain.AllSites), "Launch site, or ALL")
	return cmd
}
