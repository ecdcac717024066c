package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tfkr-ae/launchboard/db"
)

func newImportCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the dataset and write it to a SQLite snapshot",
		Long: "Load the dataset and write it to a SQLite snapshot. The snapshot replaces any\n" +
			"launches already stored at --db and can be passed back as --dataset.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			board, err := a.board()
			if err != nil {
				return err
			}

			repo, err := db.Open(dbPath)
			if err != nil {
				return fmt.Errorf("opening snapshot %s: %w", dbPath, err)
			}
			defer repo.Close()

			importID, err := repo.ImportDataset(board.Dataset(), board.Source, board.Scripts...)
			if err != nil {
				return err
			}
			a.logger.Info("snapshot written", "db", dbPath, "import", importID, "rows", board.Dataset().Len())

			result := struct {
				ImportID string `json:"import_id"`
				Source   string `json:"source"`
				Rows     int    `json:"rows"`
				Database string `json:"database"`
			}{importID.String(), board.Source, board.Dataset().Len(), dbPath}

			view := tableView{
				header: table.Row{"Import", "Source", "Rows", "Database"},
				rows:   []table.Row{{result.ImportID, result.Source, result.Rows, result.Database}},
			}
			return a.render(cmd.OutOrStdout(), result, view)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Snapshot database path (required)")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}
