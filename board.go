// Package launchboard serves the data behind a launch-records dashboard: a site
// selector, a success-share pie chart and a payload vs outcome scatter chart.
//
// A Board loads its dataset once through the dataset package and then answers every
// selector change through the pure functions in the query package.
package launchboard

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/tfkr-ae/launchboard/domain"
	"github.com/tfkr-ae/launchboard/query"
)

// ErrNoDataset is returned by queries on a Board that was created without a dataset.
var ErrNoDataset = errors.New("board has no dataset")

// Board holds the loaded dataset together with the configuration and logger used to
// build it. Once New returns, a Board is safe for concurrent queries.
type Board struct {
	Config  *Config             // The board configuration
	Logger  *slog.Logger        // Logger for load and query events
	Source  string              // Path the dataset was loaded from, if any
	Scripts []*domain.Extension // Transform scripts applied while loading
	dataset *domain.Dataset
}

// PieChart is the success-share series with the title shown above it.
type PieChart struct {
	Title  string             `json:"title"`
	Site   domain.SiteFilter  `json:"site"`
	Series domain.ChartSeries `json:"series"`
}

// ScatterChart is the payload vs outcome series for a site plus the payload range the
// renderer should display.
type ScatterChart struct {
	Title  string                `json:"title"`
	Site   domain.SiteFilter     `json:"site"`
	Points []domain.ScatterPoint `json:"points"`
	Range  domain.PayloadRange   `json:"range"`
}

// SliderSpec describes the payload range selector.
type SliderSpec struct {
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Step  float64   `json:"step"`
	Marks []float64 `json:"marks"`
}

// Summary describes the loaded dataset.
type Summary struct {
	Source         string                        `json:"source"`
	Records        int                           `json:"records"`
	Sites          int                           `json:"sites"`
	TotalSuccesses int                           `json:"total_successes"`
	MinPayload     float64                       `json:"min_payload"`
	MaxPayload     float64                       `json:"max_payload"`
	Aggregates     []domain.SiteSuccessAggregate `json:"aggregates"`
}

// New creates a Board with the default configuration and a discarding logger, then
// applies options.
func New(options ...func(*Board) error) (*Board, error) {
	board := &Board{
		Config: DefaultConfig(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	err := board.WithOptions(options...)
	if err != nil {
		return nil, err
	}
	return board, nil
}

// Dataset returns the loaded dataset, or nil.
func (board *Board) Dataset() *domain.Dataset {
	return board.dataset
}

// SuccessShare returns the pie chart for the selected site. For AllSites it has one
// slice per site; for a single site it has a Success and a Fail slice.
func (board *Board) SuccessShare(site string) (PieChart, error) {
	if board.dataset == nil {
		return PieChart{}, ErrNoDataset
	}

	filter, err := query.ResolveFilter(board.dataset, site)
	if err != nil {
		board.Logger.Debug("rejected site filter", "site", site)
		return PieChart{}, err
	}

	series, err := query.SuccessShare(board.dataset, filter)
	if err != nil {
		return PieChart{}, err
	}

	board.Logger.Debug("success share", "site", string(filter), "categories", len(series.Categories))
	return PieChart{
		Title:  pieTitle(filter),
		Site:   filter,
		Series: series,
	}, nil
}

// PayloadScatter returns the scatter chart for the selected site. rng only sets the
// displayed range; a nil rng shows the dataset's full payload span.
func (board *Board) PayloadScatter(site string, rng *domain.PayloadRange) (ScatterChart, error) {
	if board.dataset == nil {
		return ScatterChart{}, ErrNoDataset
	}

	filter, err := query.ResolveFilter(board.dataset, site)
	if err != nil {
		board.Logger.Debug("rejected site filter", "site", site)
		return ScatterChart{}, err
	}

	view, err := query.PayloadOutcome(board.dataset, filter, rng)
	if err != nil {
		return ScatterChart{}, err
	}

	board.Logger.Debug("payload scatter", "site", string(filter), "points", len(view.Points), "low", view.Range.Low, "high", view.Range.High)
	return ScatterChart{
		Title:  scatterTitle(filter),
		Site:   filter,
		Points: view.Points,
		Range:  view.Range,
	}, nil
}

// SiteOptions returns the site selector entries, All Sites first.
func (board *Board) SiteOptions() ([]domain.SiteOption, error) {
	if board.dataset == nil {
		return nil, ErrNoDataset
	}
	return query.SiteOptions(board.dataset), nil
}

// Slider returns the payload slider configuration.
func (board *Board) Slider() SliderSpec {
	return SliderSpec{
		Min:   board.Config.Slider.Min,
		Max:   board.Config.Slider.Max,
		Step:  board.Config.Slider.Step,
		Marks: slices.Clone(board.Config.Slider.Marks),
	}
}

// Summary returns the size, payload bounds and per-site success totals of the dataset.
func (board *Board) Summary() (Summary, error) {
	if board.dataset == nil {
		return Summary{}, ErrNoDataset
	}
	ds := board.dataset
	return Summary{
		Source:         board.Source,
		Records:        ds.Len(),
		Sites:          len(ds.Sites()),
		TotalSuccesses: ds.TotalSuccesses(),
		MinPayload:     ds.MinPayload(),
		MaxPayload:     ds.MaxPayload(),
		Aggregates:     ds.Aggregates(),
	}, nil
}

func pieTitle(filter domain.SiteFilter) string {
	if filter.IsAll() {
		return "total successful launches count for all sites"
	}
	return fmt.Sprintf("successful launches count for %s", filter)
}

func scatterTitle(filter domain.SiteFilter) string {
	if filter.IsAll() {
		return "payload vs launch outcome for all sites"
	}
	return fmt.Sprintf("payload vs launch outcome for %s", filter)
}
