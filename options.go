package launchboard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/tfkr-ae/launchboard/dataset"
	"github.com/tfkr-ae/launchboard/domain"
	"github.com/tfkr-ae/launchboard/extensions"
)

// WithOptions applies a series of configuration functions to the board.
// Options run in order and the first error stops the chain.
func (board *Board) WithOptions(options ...func(*Board) error) error {
	for _, option := range options {
		err := option(board)
		if err != nil {
			return fmt.Errorf("applying option on launchboard : %w", err)
		}
	}
	return nil
}

// WithConfigDir loads the configuration from <dir>/config.yaml, creating the directory
// and file with the defaults on first run.
func WithConfigDir(dir string) func(*Board) error {
	return func(board *Board) error {
		cfg, err := LoadConfig(dir)
		if err != nil {
			return err
		}
		board.Config = cfg
		return nil
	}
}

// WithConfig sets an already built configuration.
func WithConfig(cfg *Config) func(*Board) error {
	return func(board *Board) error {
		if cfg == nil {
			return errors.New("config is nil")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		board.Config = cfg
		return nil
	}
}

// WithLogger sets the logger for the board. A nil logger discards output.
func WithLogger(logger *slog.Logger) func(*Board) error {
	return func(board *Board) error {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		board.Logger = logger
		return nil
	}
}

// WithDataset loads the dataset at path using the configured columns, site scope and
// transform script. An empty path falls back to the configured dataset_path.
//
// It should come after WithConfigDir / WithConfig and WithLogger so that those
// settings apply to the load.
func WithDataset(path string) func(*Board) error {
	return func(board *Board) error {
		if path == "" {
			path = board.Config.DatasetPath
		}
		if path == "" {
			return &domain.DataLoadError{Path: path, Err: errors.New("no dataset path configured")}
		}

		scope, err := board.Config.Scope()
		if err != nil {
			return &domain.DataLoadError{Path: path, Err: err}
		}

		loadOptions := []func(*dataset.Loader) error{
			dataset.WithColumns(board.Config.Columns),
			dataset.WithScope(scope),
			dataset.WithLogger(board.Logger),
		}

		if board.Config.TransformScript != "" {
			runtime, err := extensions.LoadFile(board.Config.TransformScript, extensions.WithLogger(board.Logger))
			if err != nil {
				return &domain.DataLoadError{Path: path, Err: err}
			}
			// The runtime only lives for the load.
			defer runtime.Close()

			loadOptions = append(loadOptions, dataset.WithTransformer(runtime))
			board.Scripts = append(board.Scripts, runtime.Data)
		}

		ds, err := dataset.Load(path, loadOptions...)
		if err != nil {
			return err
		}
		board.dataset = ds
		board.Source = path
		return nil
	}
}

// WithLoadedDataset uses a dataset that was built elsewhere.
func WithLoadedDataset(ds *domain.Dataset) func(*Board) error {
	return func(board *Board) error {
		if ds == nil {
			return errors.New("dataset is nil")
		}
		board.dataset = ds
		return nil
	}
}
