package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tfkr-ae/launchboard/db"
	"github.com/tfkr-ae/launchboard/domain"
)

// snapshotStats is everything the stats command reports about a snapshot.
type snapshotStats struct {
	Launches   int                 `json:"launches"`
	Sites      int                 `json:"sites"`
	Successes  int                 `json:"successes"`
	MinPayload float64             `json:"min_payload"`
	MaxPayload float64             `json:"max_payload"`
	Imports    []*domain.Import    `json:"imports"`
	Scripts    []*domain.Extension `json:"scripts"`
}

func newStatsCmd(a *app) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show counts and import history of a SQLite snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := db.OpenReadOnly(dbPath)
			if err != nil {
				return fmt.Errorf("opening snapshot %s: %w", dbPath, err)
			}
			defer repo.Close()

			stats, err := collectStats(repo)
			if err != nil {
				return err
			}

			view := tableView{
				title: fmt.Sprintf("%d launches at %d sites, %d successful, payload [%g, %g] kg",
					stats.Launches, stats.Sites, stats.Successes, stats.MinPayload, stats.MaxPayload),
				header:  table.Row{"Import", "Source", "Rows", "Imported At"},
				numeric: []int{3},
			}
			for _, imp := range stats.Imports {
				view.rows = append(view.rows, table.Row{imp.ID, imp.Source, imp.Rows, imp.ImportedAt.Format(time.RFC3339)})
			}
			for _, script := range stats.Scripts {
				view.rows = append(view.rows, table.Row{script.ID, "script " + script.Name, "", script.UpdatedAt.Format(time.RFC3339)})
			}
			return a.render(cmd.OutOrStdout(), stats, view)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Snapshot database path (required)")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func collectStats(repo *db.Repository) (*snapshotStats, error) {
	var stats snapshotStats
	var err error

	if stats.Launches, err = repo.CountLaunches(); err != nil {
		return nil, err
	}
	if stats.Sites, err = repo.CountSites(); err != nil {
		return nil, err
	}
	if stats.Successes, err = repo.CountSuccesses(); err != nil {
		return nil, err
	}
	if stats.MinPayload, stats.MaxPayload, err = repo.PayloadBounds(); err != nil {
		return nil, err
	}
	if stats.Imports, err = repo.GetImports(); err != nil {
		return nil, err
	}
	if stats.Scripts, err = repo.GetExtensions(); err != nil {
		return nil, err
	}
	return &stats, nil
}
