package db

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tfkr-ae/launchboard/domain"
)

// ImportDataset replaces the stored snapshot with the records of ds and records the
// import under source. Any scripts the dataset was transformed with are saved in the
// same transaction, so the launches never land without their provenance.
func (repo *Repository) ImportDataset(ds *domain.Dataset, source string, scripts ...*domain.Extension) (uuid.UUID, error) {
	tx, err := repo.dbConn.Beginx()
	if err != nil {
		return uuid.Nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	importID, err := replaceLaunches(tx, source, ds.Records())
	if err != nil {
		return uuid.Nil, fmt.Errorf("importing %s: %w", source, err)
	}

	for _, script := range scripts {
		if script == nil {
			continue
		}
		if err := saveExtension(tx, script); err != nil {
			return uuid.Nil, fmt.Errorf("importing %s: %w", source, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("committing import %s: %w", source, err)
	}
	return importID, nil
}
