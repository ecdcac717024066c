package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AllSites is the SiteFilter sentinel that selects every launch site.
const AllSites SiteFilter = "ALL"

// Outcome classes used by LaunchRecord.OutcomeClass.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// LaunchRecord is a single row of the launch dataset.
type LaunchRecord struct {
	LaunchSite             string  // Launch site the rocket lifted off from.
	PayloadMassKg          float64 // Payload mass in kilograms, never negative.
	OutcomeClass           int     // 1 for a successful launch, 0 for a failure.
	BoosterVersionCategory string  // Booster label, used for grouping points only.
}

// SiteSuccessAggregate holds the number of successful launches for one site.
type SiteSuccessAggregate struct {
	LaunchSite        string
	TotalSuccessCount int
}

// SiteFilter selects either AllSites or one exact launch site.
type SiteFilter string

// IsAll reports whether the filter is the AllSites sentinel.
func (f SiteFilter) IsAll() bool {
	return f == AllSites
}

// PayloadRange is a closed payload interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Valid reports whether both bounds are finite and 0 <= Low <= High.
func (r PayloadRange) Valid() bool {
	if math.IsInf(r.Low, 0) || math.IsInf(r.High, 0) {
		return false
	}
	// NaN fails both comparisons.
	return r.Low >= 0 && r.Low <= r.High
}

// Contains reports whether payload lies inside the closed interval.
func (r PayloadRange) Contains(payload float64) bool {
	return payload >= r.Low && payload <= r.High
}

// Columns maps the four required LaunchRecord fields to header names in a source file.
type Columns struct {
	LaunchSite      string `mapstructure:"launch_site" json:"launch_site"`
	PayloadMass     string `mapstructure:"payload_mass" json:"payload_mass"`
	OutcomeClass    string `mapstructure:"outcome_class" json:"outcome_class"`
	BoosterCategory string `mapstructure:"booster_category" json:"booster_category"`
}

// DefaultColumns returns the header names used by the published SpaceX launch dataset.
func DefaultColumns() Columns {
	return Columns{
		LaunchSite:      "Launch Site",
		PayloadMass:     "Payload Mass (kg)",
		OutcomeClass:    "class",
		BoosterCategory: "Booster Version Category",
	}
}

// RecordTransformer rewrites records while a dataset is being loaded.
// Returning keep == false drops the record.
type RecordTransformer interface {
	Transform(record LaunchRecord) (out LaunchRecord, keep bool, err error)
}

// NamedTransformer is a RecordTransformer backed by a stored script. Snapshots record
// the names of the scripts their launches already went through.
type NamedTransformer interface {
	RecordTransformer
	Name() string
}

// LaunchRepository defines the interface for storing and reading launch snapshots.
type LaunchRepository interface {
	// InsertLaunches stores records under the given import, preserving slice order.
	InsertLaunches(importID uuid.UUID, records []LaunchRecord) error
	// GetLaunches returns every stored record in the order it was inserted.
	GetLaunches() ([]LaunchRecord, error)
	// DeleteLaunches removes every stored record.
	DeleteLaunches() error
}

// ImportRepository defines the interface for tracking dataset imports.
type ImportRepository interface {
	// CreateImport records a new import of source with the given row count and returns its ID.
	CreateImport(source string, rows int) (uuid.UUID, error)
	// GetImports returns all imports, oldest first.
	GetImports() ([]*Import, error)
	// GetLatestImport returns the most recent import.
	GetLatestImport() (*Import, error)
}

// Import describes one snapshot of a source file written to the store.
type Import struct {
	ID         uuid.UUID // Unique identifier for the import.
	Source     string    // Path of the file the records were read from.
	Rows       int       // Number of records written.
	ImportedAt time.Time // Time the import was created.
}
