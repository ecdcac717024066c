package db

import (
	"fmt"

	"github.com/tfkr-ae/launchboard/domain"
)

var _ domain.StatsRepository = (*Repository)(nil)

// CountLaunches returns the total number of stored launches.
func (repo *Repository) CountLaunches() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM launch`

	err := repo.dbConn.Get(&count, query)
	if err != nil {
		return 0, fmt.Errorf("getting launch count: %w", err)
	}

	return count, nil
}

// CountSites returns the number of distinct launch sites.
func (repo *Repository) CountSites() (int, error) {
	var count int
	query := `SELECT COUNT(DISTINCT launch_site) FROM launch`

	err := repo.dbConn.Get(&count, query)
	if err != nil {
		return 0, fmt.Errorf("getting site count: %w", err)
	}

	return count, nil
}

// CountSuccesses returns the number of launches with a successful outcome.
func (repo *Repository) CountSuccesses() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM launch WHERE outcome_class = 1`

	err := repo.dbConn.Get(&count, query)
	if err != nil {
		return 0, fmt.Errorf("getting success count: %w", err)
	}

	return count, nil
}

// PayloadBounds returns the smallest and largest stored payload mass.
func (repo *Repository) PayloadBounds() (float64, float64, error) {
	var bounds struct {
		Min float64 `db:"min_payload"`
		Max float64 `db:"max_payload"`
	}
	query := `SELECT CAST(COALESCE(MIN(payload_mass_kg), 0) AS REAL) AS min_payload,
	                 CAST(COALESCE(MAX(payload_mass_kg), 0) AS REAL) AS max_payload
	          FROM launch`

	err := repo.dbConn.Get(&bounds, query)
	if err != nil {
		return 0, 0, fmt.Errorf("getting payload bounds: %w", err)
	}

	return bounds.Min, bounds.Max, nil
}
