package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tfkr-ae/launchboard/domain"
)

var _ domain.ImportRepository = (*Repository)(nil)

// dbImport represents an import as stored in the database.
type dbImport struct {
	ID         uuid.UUID `db:"id"`          // Unique identifier for the import.
	Source     string    `db:"source"`      // Path of the imported file.
	RowCount   int       `db:"row_count"`   // Number of launches written.
	ImportedAt time.Time `db:"imported_at"` // Time of the import.
}

// toDomainImport converts a dbImport to a domain.Import.
func toDomainImport(dbImport *dbImport) *domain.Import {
	return &domain.Import{
		ID:         dbImport.ID,
		Source:     dbImport.Source,
		Rows:       dbImport.RowCount,
		ImportedAt: dbImport.ImportedAt,
	}
}

// CreateImport records a new import and returns its UUIDv7.
func (repo *Repository) CreateImport(source string, rows int) (uuid.UUID, error) {
	importID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generating uuid: %w", err)
	}

	query := `INSERT INTO import (id, source, row_count, imported_at) VALUES (?, ?, ?, ?)`
	_, err = repo.dbConn.Exec(query, importID, source, rows, time.Now())
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating import %s: %w", source, err)
	}

	return importID, nil
}

// GetImports retrieves every import, oldest first.
func (repo *Repository) GetImports() ([]*domain.Import, error) {
	var dbImports []*dbImport
	query := `SELECT id, source, row_count, imported_at FROM import ORDER BY imported_at, id`

	err := repo.dbConn.Select(&dbImports, query)
	if err != nil {
		return nil, fmt.Errorf("getting imports: %w", err)
	}

	imports := make([]*domain.Import, len(dbImports))
	for i, imp := range dbImports {
		imports[i] = toDomainImport(imp)
	}
	return imports, nil
}

// GetLatestImport retrieves the most recent import.
// It wraps sql.ErrNoRows when nothing was imported yet.
func (repo *Repository) GetLatestImport() (*domain.Import, error) {
	var imp dbImport
	query := `SELECT id, source, row_count, imported_at FROM import ORDER BY imported_at DESC, id DESC LIMIT 1`

	err := repo.dbConn.Get(&imp, query)
	if err != nil {
		return nil, fmt.Errorf("getting latest import: %w", err)
	}
	return toDomainImport(&imp), nil
}
