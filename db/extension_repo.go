package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tfkr-ae/launchboard/domain"
)

var _ domain.ExtensionRepository = (*Repository)(nil)

// dbExtension represents the structure of an extension as stored in the database.
type dbExtension struct {
	ID         uuid.UUID `db:"id"`
	Name       string    `db:"name"`
	LuaContent string    `db:"lua_content"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// toDomainExtension converts a dbExtension struct to its domain.Extension representation.
func toDomainExtension(dbExt *dbExtension) *domain.Extension {
	return &domain.Extension{
		ID:         dbExt.ID,
		Name:       dbExt.Name,
		LuaContent: dbExt.LuaContent,
		UpdatedAt:  dbExt.UpdatedAt,
	}
}

// SaveExtension implements the domain.ExtensionRepository interface.
// A script with the same name keeps its stored ID, which is written back to ext.
func (repo *Repository) SaveExtension(ext *domain.Extension) error {
	return saveExtension(repo.dbConn, ext)
}

func saveExtension(q sqlx.Queryer, ext *domain.Extension) error {
	if ext.Name == "" {
		return fmt.Errorf("saving extension: empty name")
	}

	id := ext.ID
	if id == uuid.Nil {
		var err error
		id, err = uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating uuid: %w", err)
		}
	}
	updatedAt := time.Now()

	query := `INSERT INTO extension (id, name, lua_content, updated_at) VALUES (?, ?, ?, ?)
	          ON CONFLICT(name) DO UPDATE SET lua_content = excluded.lua_content, updated_at = excluded.updated_at
	          RETURNING id`

	var stored uuid.UUID
	err := sqlx.Get(q, &stored, query, id, ext.Name, ext.LuaContent, updatedAt)
	if err != nil {
		return fmt.Errorf("saving extension %s: %w", ext.Name, err)
	}
	ext.ID = stored
	ext.UpdatedAt = updatedAt
	return nil
}

// GetExtensions implements the domain.ExtensionRepository interface.
func (repo *Repository) GetExtensions() ([]*domain.Extension, error) {
	var dbExts []*dbExtension
	query := `SELECT id, name, lua_content, updated_at FROM extension ORDER BY name ASC`

	err := repo.dbConn.Select(&dbExts, query)
	if err != nil {
		return nil, fmt.Errorf("fetching all extensions: %w", err)
	}

	domainExts := make([]*domain.Extension, len(dbExts))
	for i, dbExt := range dbExts {
		domainExts[i] = toDomainExtension(dbExt)
	}
	return domainExts, nil
}

// GetExtensionByName implements the domain.ExtensionRepository interface.
func (repo *Repository) GetExtensionByName(name string) (*domain.Extension, error) {
	var dbExt dbExtension
	query := `SELECT id, name, lua_content, updated_at FROM extension WHERE name = ?`

	err := repo.dbConn.Get(&dbExt, query, name)
	if err != nil {
		return nil, fmt.Errorf("fetching extension %s: %w", name, err)
	}

	return toDomainExtension(&dbExt), nil
}

// GetExtensionLuaCodeByName implements the domain.ExtensionRepository interface.
func (repo *Repository) GetExtensionLuaCodeByName(name string) (string, error) {
	var code string
	query := `SELECT lua_content FROM extension WHERE name = ?`

	err := repo.dbConn.Get(&code, query, name)
	if err != nil {
		return "", fmt.Errorf("getting extension %s code: %w", name, err)
	}

	return code, nil
}
