package dataset

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tfkr-ae/launchboard/compass"
	"github.com/tfkr-ae/launchboard/domain"
)

// WithColumns overrides the header names used to find the four required columns.
// Empty names keep their default.
func WithColumns(columns domain.Columns) func(*Loader) error {
	return func(l *Loader) error {
		defaults := domain.DefaultColumns()
		if columns.LaunchSite == "" {
			columns.LaunchSite = defaults.LaunchSite
		}
		if columns.PayloadMass == "" {
			columns.PayloadMass = defaults.PayloadMass
		}
		if columns.OutcomeClass == "" {
			columns.OutcomeClass = defaults.OutcomeClass
		}
		if columns.BoosterCategory == "" {
			columns.BoosterCategory = defaults.BoosterCategory
		}
		l.columns = columns
		return nil
	}
}

// WithScope drops records whose launch site is out of scope.
func WithScope(scope *compass.Scope) func(*Loader) error {
	return func(l *Loader) error {
		if scope == nil {
			return fmt.Errorf("scope is nil")
		}
		l.scope = scope
		return nil
	}
}

// WithTransformer passes every record through transformer before it is scoped.
func WithTransformer(transformer domain.RecordTransformer) func(*Loader) error {
	return func(l *Loader) error {
		if transformer == nil {
			return fmt.Errorf("transformer is nil")
		}
		l.transformer = transformer
		return nil
	}
}

// WithLogger sets the logger for the loader. A nil logger discards output.
func WithLogger(logger *slog.Logger) func(*Loader) error {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		l.logger = logger
		return nil
	}
}
