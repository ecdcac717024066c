package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/tfkr-ae/launchboard"
	"github.com/tfkr-ae/launchboard/domain"
)

const fixture = "../../testdata/spacex_launch_dash.csv"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSitesCmd(t *testing.T) {
	t.Run("should list all sites first", func(t *testing.T) {
		out, _, err := run(t, "sites", "--dataset", fixture, "--format", "json")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		var options []domain.SiteOption
		if err := json.Unmarshal([]byte(out), &options); err != nil {
			t.Fatalf("decoding output: %v\n%s", err, out)
		}
		if len(options) != 5 || options[0].Value != domain.AllSites {
			t.Fatalf("\nwanted:\nALL plus 4 sites\ngot:\n%v", options)
		}
	})
}

func TestPieCmd(t *testing.T) {
	t.Run("should render the all sites share as a table", func(t *testing.T) {
		out, _, err := run(t, "pie", "--dataset", fixture)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		for _, want := range []string{"total successful launches count for all sites", "KSC LC-39A", "CCAFS SLC-40"} {
			if !strings.Contains(out, want) {
				t.Fatalf("\nwanted:\noutput containing %q\ngot:\n%s", want, out)
			}
		}
	})

	t.Run("should print a long title unbroken above the table", func(t *testing.T) {
		out, _, err := run(t, "pie", "--dataset", fixture, "--format", "markdown")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		first, rest, _ := strings.Cut(out, "\n")
		if first != "total successful launches count for all sites" {
			t.Fatalf("\nwanted:\n%q\ngot:\n%q", "total successful launches count for all sites", first)
		}
		if !strings.Contains(rest, "| KSC LC-39A |") {
			t.Fatalf("\nwanted:\nmarkdown row for KSC LC-39A\ngot:\n%s", rest)
		}
	})

	t.Run("should return Success and Fail for a site", func(t *testing.T) {
		out, _, err := run(t, "pie", "--dataset", fixture, "--site", "KSC LC-39A", "--format", "json")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		var chart launchboard.PieChart
		if err := json.Unmarshal([]byte(out), &chart); err != nil {
			t.Fatalf("decoding output: %v\n%s", err, out)
		}
		want := []domain.Category{{Label: "Success", Count: 2}, {Label: "Fail", Count: 1}}
		if len(chart.Series.Categories) != 2 || chart.Series.Categories[0] != want[0] || chart.Series.Categories[1] != want[1] {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, chart.Series.Categories)
		}
	})

	t.Run("should fail for an unknown site", func(t *testing.T) {
		_, _, err := run(t, "pie", "--dataset", fixture, "--site", "Starbase")
		if !errors.Is(err, domain.ErrInvalidSiteFilter) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrInvalidSiteFilter, err)
		}
	})

	t.Run("should fail before querying when the dataset cannot load", func(t *testing.T) {
		_, _, err := run(t, "pie", "--dataset", filepath.Join(t.TempDir(), "missing.csv"))

		var loadErr *domain.DataLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("\nwanted:\n*domain.DataLoadError\ngot:\n%v", err)
		}
	})
}

func TestScatterCmd(t *testing.T) {
	t.Run("should pass the payload range through", func(t *testing.T) {
		out, _, err := run(t, "scatter", "--dataset", fixture, "--site", "VAFB SLC-4E", "--payload-min", "1000", "--payload-max", "8000", "--format", "json")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		var chart launchboard.ScatterChart
		if err := json.Unmarshal([]byte(out), &chart); err != nil {
			t.Fatalf("decoding output: %v\n%s", err, out)
		}
		if len(chart.Points) != 2 {
			t.Fatalf("\nwanted:\n2\ngot:\n%d", len(chart.Points))
		}
		if chart.Range != (domain.PayloadRange{Low: 1000, High: 8000}) {
			t.Fatalf("\nwanted:\n{1000 8000}\ngot:\n%v", chart.Range)
		}
	})

	t.Run("should reject an infinite range bound", func(t *testing.T) {
		_, _, err := run(t, "scatter", "--dataset", fixture, "--payload-min", "0", "--payload-max", "inf", "--format", "json")
		if !errors.Is(err, domain.ErrInvalidPayloadRange) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrInvalidPayloadRange, err)
		}
	})

	t.Run("should require both range bounds", func(t *testing.T) {
		_, _, err := run(t, "scatter", "--dataset", fixture, "--payload-min", "1000")
		if err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})
}

func TestSummaryCmd(t *testing.T) {
	t.Run("should log the load at info level to stderr", func(t *testing.T) {
		out, errOut, err := run(t, "summary", "--dataset", fixture, "--format", "markdown")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if !strings.Contains(out, "| KSC LC-39A |") {
			t.Fatalf("\nwanted:\nmarkdown row for KSC LC-39A\ngot:\n%s", out)
		}
		if !strings.Contains(errOut, "dataset loaded") {
			t.Fatalf("\nwanted:\nlog output containing 'dataset loaded'\ngot:\n%s", errOut)
		}
	})

	t.Run("should silence info logs at error level", func(t *testing.T) {
		_, errOut, err := run(t, "summary", "--dataset", fixture, "--log-level", "error")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if strings.Contains(errOut, "dataset loaded") {
			t.Fatalf("\nwanted:\nno info logs\ngot:\n%s", errOut)
		}
	})
}

func TestImportAndStatsCmd(t *testing.T) {
	t.Run("should write a snapshot that loads and reports back", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "launches.db")

		if _, _, err := run(t, "import", "--dataset", fixture, "--db", dbPath); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		out, _, err := run(t, "stats", "--db", dbPath, "--format", "json")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		var stats snapshotStats
		if err := json.Unmarshal([]byte(out), &stats); err != nil {
			t.Fatalf("decoding output: %v\n%s", err, out)
		}
		if stats.Launches != 14 || stats.Sites != 4 || stats.Successes != 6 || len(stats.Imports) != 1 {
			t.Fatalf("\nwanted:\n14 launches, 4 sites, 6 successes, 1 import\ngot:\n%+v", stats)
		}

		out, _, err = run(t, "pie", "--dataset", dbPath, "--format", "json")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		var chart launchboard.PieChart
		if err := json.Unmarshal([]byte(out), &chart); err != nil {
			t.Fatalf("decoding output: %v\n%s", err, out)
		}
		if chart.Series.Total() != 6 {
			t.Fatalf("\nwanted:\n6\ngot:\n%d", chart.Series.Total())
		}
	})

	t.Run("should refuse a SQLite file that is not a snapshot without migrating it", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "other.db")
		other, err := sqlx.Connect("sqlite", dbPath)
		if err != nil {
			t.Fatalf("creating database: %v", err)
		}
		if _, err := other.Exec(`CREATE TABLE things (name TEXT)`); err != nil {
			t.Fatalf("creating table: %v", err)
		}
		other.Close()

		_, _, err = run(t, "stats", "--db", dbPath)
		if !errors.Is(err, domain.ErrUnsupportedSource) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", domain.ErrUnsupportedSource, err)
		}

		reopened, err := sqlx.Connect("sqlite", dbPath)
		if err != nil {
			t.Fatalf("reopening database: %v", err)
		}
		defer reopened.Close()
		var tables int
		if err := reopened.Get(&tables, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'`); err != nil {
			t.Fatalf("counting tables: %v", err)
		}
		if tables != 1 {
			t.Fatalf("\nwanted:\n1\ngot:\n%d", tables)
		}
	})

	t.Run("should not create a snapshot that does not exist", func(t *testing.T) {
		_, _, err := run(t, "stats", "--db", filepath.Join(t.TempDir(), "missing.db"))
		if err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})
}

func TestConfigCmd(t *testing.T) {
	t.Run("should persist the dataset path and site rules", func(t *testing.T) {
		dir := t.TempDir()

		if _, _, err := run(t, "--config-dir", dir, "config", "set-dataset", fixture); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if _, _, err := run(t, "--config-dir", dir, "config", "add-site", "^VAFB", "--exclude"); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		out, _, err := run(t, "--config-dir", dir, "sites", "--format", "json")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		var options []domain.SiteOption
		if err := json.Unmarshal([]byte(out), &options); err != nil {
			t.Fatalf("decoding output: %v\n%s", err, out)
		}
		for _, option := range options {
			if option.Value == "VAFB SLC-4E" {
				t.Fatalf("\nwanted:\nno VAFB SLC-4E\ngot:\n%v", options)
			}
		}
		if len(options) != 4 {
			t.Fatalf("\nwanted:\n4\ngot:\n%d", len(options))
		}
	})

	t.Run("should show the configuration with its file keys as json", func(t *testing.T) {
		out, _, err := run(t, "--config-dir", t.TempDir(), "config", "show", "--format", "json")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		var shown map[string]any
		if err := json.Unmarshal([]byte(out), &shown); err != nil {
			t.Fatalf("decoding output: %v\n%s", err, out)
		}
		for _, key := range []string{"dataset_path", "log_level", "columns", "slider", "sites", "transform_script"} {
			if _, ok := shown[key]; !ok {
				t.Fatalf("\nwanted:\nkey %q\ngot:\n%s", key, out)
			}
		}
		columns, _ := shown["columns"].(map[string]any)
		if columns["launch_site"] != "Launch Site" {
			t.Fatalf("\nwanted:\nLaunch Site\ngot:\n%v", columns)
		}
	})

	t.Run("should refuse to change the config without a directory", func(t *testing.T) {
		_, _, err := run(t, "config", "set-dataset", fixture)
		if !errors.Is(err, errNoConfigDir) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", errNoConfigDir, err)
		}
	})
}
