package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tfkr-ae/launchboard/compass"
	"github.com/tfkr-ae/launchboard/db"
	"github.com/tfkr-ae/launchboard/domain"
)

// Source types recognised by the loader.
const (
	mimeSQLite = "application/vnd.sqlite3"
	mimeText   = "text/plain"
)

// Loader turns a source file into a domain.Dataset.
type Loader struct {
	columns     domain.Columns
	scope       *compass.Scope
	transformer domain.RecordTransformer
	logger      *slog.Logger
}

// NewLoader creates a Loader with the default columns, an allow-all scope and no
// transformer, then applies options.
func NewLoader(options ...func(*Loader) error) (*Loader, error) {
	l := &Loader{
		columns: domain.DefaultColumns(),
		scope:   compass.NewScope(true),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Load reads the launch table at path. Every failure is returned as a
// *domain.DataLoadError.
func Load(path string, options ...func(*Loader) error) (*domain.Dataset, error) {
	l, err := NewLoader(options...)
	if err != nil {
		return nil, &domain.DataLoadError{Path: path, Err: err}
	}
	return l.Load(path)
}

// Load reads the launch table at path. A SQLite snapshot is opened read-only through
// the snapshot store, and a NamedTransformer whose script the snapshot already records
// is not run again. Any text file is parsed as CSV with a header row.
func (l *Loader) Load(path string) (*domain.Dataset, error) {
	ds, err := l.load(path)
	if err != nil {
		return nil, &domain.DataLoadError{Path: path, Err: err}
	}

	l.logger.Info("dataset loaded", "path", path, "rows", ds.Len(), "sites", len(ds.Sites()))
	return ds, nil
}

func (l *Loader) load(path string) (*domain.Dataset, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detecting source type: %w", err)
	}
	l.logger.Debug("detected dataset source", "path", path, "mime", mtype.String())

	transformer := l.transformer
	var raw []domain.LaunchRecord
	switch {
	case mtype.Is(mimeSQLite):
		var applied []string
		raw, applied, err = readSnapshot(path)
		if named, ok := transformer.(domain.NamedTransformer); ok && slices.Contains(applied, named.Name()) {
			l.logger.Info("skipping transform already applied to snapshot", "path", path, "script", named.Name())
			transformer = nil
		}
	case isText(mtype):
		raw, err = l.readCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedSource, mtype.String())
	}
	if err != nil {
		return nil, err
	}

	records, err := l.filter(raw, transformer)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyDataset
	}
	return domain.NewDataset(records), nil
}

// filter applies transformer, if any, and then the scope to every record.
func (l *Loader) filter(raw []domain.LaunchRecord, transformer domain.RecordTransformer) ([]domain.LaunchRecord, error) {
	records := make([]domain.LaunchRecord, 0, len(raw))
	dropped := 0

	for i, record := range raw {
		if transformer != nil {
			out, keep, err := transformer.Transform(record)
			if err != nil {
				return nil, fmt.Errorf("transforming record %d: %w", i+1, err)
			}
			if !keep {
				dropped++
				continue
			}
			record = out
		}

		if !l.scope.Matches(record.LaunchSite) {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if dropped > 0 {
		l.logger.Debug("records dropped", "dropped", dropped, "kept", len(records))
	}
	return records, nil
}

// readCSV parses a delimited text file whose first row names the columns.
func (l *Loader) readCSV(path string) ([]domain.LaunchRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", domain.ErrMalformedRecord, err)
	}

	idx, err := l.columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []domain.LaunchRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrMalformedRecord, err)
		}

		line, _ := reader.FieldPos(0)
		record, err := idx.parse(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", domain.ErrMalformedRecord, line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// columns holds the position of each required column in a row.
type columns struct {
	site, payload, class, booster int
}

func (l *Loader) columnIndex(header []string) (columns, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, ok := positions[name]; !ok {
			positions[name] = i
		}
	}

	lookup := func(name string) (int, error) {
		i, ok := positions[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", domain.ErrMissingColumn, name)
		}
		return i, nil
	}

	var idx columns
	var err error
	if idx.site, err = lookup(l.columns.LaunchSite); err != nil {
		return idx, err
	}
	if idx.payload, err = lookup(l.columns.PayloadMass); err != nil {
		return idx, err
	}
	if idx.class, err = lookup(l.columns.OutcomeClass); err != nil {
		return idx, err
	}
	if idx.booster, err = lookup(l.columns.BoosterCategory); err != nil {
		return idx, err
	}
	return idx, nil
}

func (idx columns) parse(row []string) (domain.LaunchRecord, error) {
	last := max(idx.site, idx.payload, idx.class, idx.booster)
	if len(row) <= last {
		return domain.LaunchRecord{}, fmt.Errorf("expected at least %d fields, got %d", last+1, len(row))
	}

	site := strings.TrimSpace(row[idx.site])
	if site == "" {
		return domain.LaunchRecord{}, fmt.Errorf("empty launch site")
	}

	payload, err := ParsePayload(row[idx.payload])
	if err != nil {
		return domain.LaunchRecord{}, err
	}

	class, err := ParseOutcome(row[idx.class])
	if err != nil {
		return domain.LaunchRecord{}, err
	}

	return domain.LaunchRecord{
		LaunchSite:             site,
		PayloadMassKg:          payload,
		OutcomeClass:           class,
		BoosterVersionCategory: strings.TrimSpace(row[idx.booster]),
	}, nil
}

// ParsePayload parses a payload mass in kg. It must be finite and non-negative.
func ParsePayload(value string) (float64, error) {
	payload, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("payload mass %q: %w", value, err)
	}
	if math.IsNaN(payload) || math.IsInf(payload, 0) || payload < 0 {
		return 0, fmt.Errorf("payload mass %q out of range", value)
	}
	return payload, nil
}

// ParseOutcome parses an outcome class, which must be exactly 0 or 1.
func ParseOutcome(value string) (int, error) {
	class, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("outcome class %q: %w", value, err)
	}
	switch class {
	case domain.OutcomeFailure:
		return domain.OutcomeFailure, nil
	case domain.OutcomeSuccess:
		return domain.OutcomeSuccess, nil
	default:
		return 0, fmt.Errorf("outcome class %q is not 0 or 1", value)
	}
}

// readSnapshot reads every launch stored in a snapshot written by db.ImportDataset,
// along with the names of the scripts those launches were transformed with. The file
// is opened read-only.
func readSnapshot(path string) ([]domain.LaunchRecord, []string, error) {
	repo, err := db.OpenReadOnly(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening snapshot: %w", err)
	}
	defer repo.Close()

	records, err := repo.GetLaunches()
	if err != nil {
		return nil, nil, fmt.Errorf("reading snapshot: %w", err)
	}

	scripts, err := repo.GetExtensions()
	if err != nil {
		return nil, nil, fmt.Errorf("reading snapshot scripts: %w", err)
	}
	applied := make([]string, len(scripts))
	for i, script := range scripts {
		applied[i] = script.Name
	}
	return records, applied, nil
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(mimeText) {
			return true
		}
	}
	return false
}
