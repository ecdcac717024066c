package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSitesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the launch-site selector options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := a.board()
			if err != nil {
				return err
			}

			options, err := board.SiteOptions()
			if err != nil {
				return err
			}

			view := tableView{header: table.Row{"Label", "Value"}}
			for _, option := range options {
				view.rows = append(view.rows, table.Row{option.Label, option.Value})
			}
			return a.render(cmd.OutOrStdout(), options, view)
		},
	}
}
