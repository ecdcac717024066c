package launchboard

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tfkr-ae/launchboard/domain"
)

const fixture = "testdata/spacex_launch_dash.csv"

func TestWithLogger(t *testing.T) {
	t.Run("sets custom logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		b, err := New(
			WithLogger(logger),
		)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if b.Logger != logger {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", logger, b.Logger)
		}

		b.Logger.Info("test log message")
		if !strings.Contains(buf.String(), "test log message") {
			t.Fatalf("\nwanted:\nlog output containing 'test log message'\ngot:\n%q", buf.String())
		}
	})

	t.Run("handles nil logger safely", func(t *testing.T) {
		b, err := New(
			WithLogger(nil),
		)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		if b.Logger == nil {
			t.Fatalf("\nwanted:\nnon-nil logger\ngot:\nnil")
		}

		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("\nwanted:\nno panic\ngot:\n%v", r)
			}
		}()

		b.Logger.Info("safe check")
	})
}

func TestWithDataset(t *testing.T) {
	t.Run("should load the dataset and log it", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		b, err := New(WithLogger(logger), WithDataset(fixture))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if b.Dataset() == nil || b.Dataset().Len() != 14 {
			t.Fatalf("\nwanted:\n14 records\ngot:\n%v", b.Dataset())
		}
		if b.Source != fixture {
			t.Fatalf("\nwanted:\n%s\ngot:\n%s", fixture, b.Source)
		}
		if !strings.Contains(buf.String(), "dataset loaded") {
			t.Fatalf("\nwanted:\nlog output containing 'dataset loaded'\ngot:\n%q", buf.String())
		}
	})

	t.Run("should fall back to the configured dataset path", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.DatasetPath = fixture

		b, err := New(WithConfig(cfg), WithDataset(""))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if b.Dataset().Len() != 14 {
			t.Fatalf("\nwanted:\n14\ngot:\n%d", b.Dataset().Len())
		}
	})

	t.Run("should fail with a DataLoadError when no path is known", func(t *testing.T) {
		_, err := New(WithDataset(""))

		var loadErr *domain.DataLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("\nwanted:\n*domain.DataLoadError\ngot:\n%v", err)
		}
	})

	t.Run("should fail with a DataLoadError for a missing file", func(t *testing.T) {
		_, err := New(WithDataset(filepath.Join(t.TempDir(), "missing.csv")))

		var loadErr *domain.DataLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("\nwanted:\n*domain.DataLoadError\ngot:\n%v", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", os.ErrNotExist, err)
		}
	})

	t.Run("should apply the configured scope", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Sites.Exclude = []string{"^KSC"}

		b, err := New(WithConfig(cfg), WithDataset(fixture))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if b.Dataset().HasSite("KSC LC-39A") {
			t.Fatalf("\nwanted:\nno KSC LC-39A\ngot:\n%v", b.Dataset().Sites())
		}
	})

	t.Run("should apply the configured transform script", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.TransformScript = "testdata/ccafs_merge.lua"

		b, err := New(WithConfig(cfg), WithDataset(fixture))
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}

		want := []string{"CCAFS", "VAFB SLC-4E", "KSC LC-39A"}
		got := b.Dataset().Sites()
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", want, got)
		}
		if len(b.Scripts) != 1 || b.Scripts[0].Name != "ccafs_merge.lua" {
			t.Fatalf("\nwanted:\n[ccafs_merge.lua]\ngot:\n%v", b.Scripts)
		}
	})

	t.Run("should fail with a DataLoadError for a broken script", func(t *testing.T) {
		script := filepath.Join(t.TempDir(), "broken.lua")
		if err := os.WriteFile(script, []byte("function transform(record"), 0o644); err != nil {
			t.Fatalf("writing script: %v", err)
		}

		cfg := DefaultConfig()
		cfg.TransformScript = script

		_, err := New(WithConfig(cfg), WithDataset(fixture))

		var loadErr *domain.DataLoadError
		if !errors.As(err, &loadErr) {
			t.Fatalf("\nwanted:\n*domain.DataLoadError\ngot:\n%v", err)
		}
	})
}

func TestWithConfig(t *testing.T) {
	t.Run("should reject a nil config", func(t *testing.T) {
		if _, err := New(WithConfig(nil)); err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})

	t.Run("should reject invalid slider bounds", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Slider.Min = 500
		cfg.Slider.Max = 100

		if _, err := New(WithConfig(cfg)); err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})
}

func TestWithLoadedDataset(t *testing.T) {
	t.Run("should reject a nil dataset", func(t *testing.T) {
		if _, err := New(WithLoadedDataset(nil)); err == nil {
			t.Fatalf("\nwanted:\nerror\ngot:\nnil")
		}
	})
}
