package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tfkr-ae/launchboard/domain"
)

var _ domain.LaunchRepository = (*Repository)(nil)

// dbLaunch represents a launch record as stored in the database.
type dbLaunch struct {
	LaunchSite             string  `db:"launch_site"`
	PayloadMassKg          float64 `db:"payload_mass_kg"`
	OutcomeClass           int     `db:"outcome_class"`
	BoosterVersionCategory string  `db:"booster_version_category"`
}

// toDomainLaunch converts a dbLaunch to a domain.LaunchRecord.
func toDomainLaunch(launch *dbLaunch) domain.LaunchRecord {
	return domain.LaunchRecord{
		LaunchSite:             launch.LaunchSite,
		PayloadMassKg:          launch.PayloadMassKg,
		OutcomeClass:           launch.OutcomeClass,
		BoosterVersionCategory: launch.BoosterVersionCategory,
	}
}

// InsertLaunches stores records under importID inside a single transaction.
func (repo *Repository) InsertLaunches(importID uuid.UUID, records []domain.LaunchRecord) error {
	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertLaunches(tx, importID, records); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing launches: %w", err)
	}
	return nil
}

// GetLaunches retrieves every stored launch in insertion order.
func (repo *Repository) GetLaunches() ([]domain.LaunchRecord, error) {
	var dbLaunches []*dbLaunch
	query := `SELECT launch_site, payload_mass_kg, outcome_class, booster_version_category FROM launch ORDER BY id`

	err := repo.dbConn.Select(&dbLaunches, query)
	if err != nil {
		return nil, fmt.Errorf("getting launches: %w", err)
	}

	records := make([]domain.LaunchRecord, len(dbLaunches))
	for i, launch := range dbLaunches {
		records[i] = toDomainLaunch(launch)
	}
	return records, nil
}

// DeleteLaunches removes every stored launch.
func (repo *Repository) DeleteLaunches() error {
	_, err := repo.dbConn.Exec(`DELETE FROM launch`)
	if err != nil {
		return fmt.Errorf("deleting launches: %w", err)
	}
	return nil
}

// ReplaceLaunches swaps the stored snapshot for records in one transaction: every
// previous launch is removed and a new import for source is created. It returns the
// ID of the new import.
func (repo *Repository) ReplaceLaunches(source string, records []domain.LaunchRecord) (uuid.UUID, error) {
	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return uuid.Nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	importID, err := replaceLaunches(tx, source, records)
	if err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("committing snapshot: %w", err)
	}
	return importID, nil
}

func replaceLaunches(tx *sqlx.Tx, source string, records []domain.LaunchRecord) (uuid.UUID, error) {
	importID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generating uuid: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM launch`); err != nil {
		return uuid.Nil, fmt.Errorf("deleting launches: %w", err)
	}

	query := `INSERT INTO import (id, source, row_count, imported_at) VALUES (?, ?, ?, ?)`
	if _, err := tx.Exec(query, importID, source, len(records), time.Now()); err != nil {
		return uuid.Nil, fmt.Errorf("creating import %s: %w", source, err)
	}

	if err := insertLaunches(tx, importID, records); err != nil {
		return uuid.Nil, err
	}
	return importID, nil
}

func insertLaunches(tx *sqlx.Tx, importID uuid.UUID, records []domain.LaunchRecord) error {
	stmt, err := tx.Preparex(`INSERT INTO launch (launch_site, payload_mass_kg, outcome_class, booster_version_category, import_id)
	                          VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing launch insert: %w", err)
	}
	defer stmt.Close()

	for i, record := range records {
		_, err := stmt.Exec(record.LaunchSite, record.PayloadMassKg, record.OutcomeClass, record.BoosterVersionCategory, importID)
		if err != nil {
			return fmt.Errorf("inserting launch %d (%s): %w", i, record.LaunchSite, err)
		}
	}
	return nil
}
