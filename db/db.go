package db

import (
	"embed"
	"fmt"

	_ "github.com/tfkr-ae/launchboard/db/migrations"
	"github.com/tfkr-ae/launchboard/domain"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql migrations/*.go
var embedMigrations embed.FS

// SchemaVersion is the goose version of the newest migration. Read-only opens only
// accept snapshots at exactly this version.
const SchemaVersion int64 = 3

// ErrNotSnapshot is returned by OpenReadOnly for a SQLite file that was not written by
// this package, or that was written with another schema version. It wraps
// domain.ErrUnsupportedSource.
var ErrNotSnapshot = fmt.Errorf("%w: not a launch snapshot", domain.ErrUnsupportedSource)

// Repository wraps a snapshot database. Its methods implement the repository interfaces
// defined in the domain package.
type Repository struct {
	dbConn *sqlx.DB
}

// NewSnapshotRepo wraps a connection returned by New.
func NewSnapshotRepo(db *sqlx.DB) *Repository {
	return &Repository{
		dbConn: db,
	}
}

// Open opens the snapshot at name for writing, creating the file if needed and
// migrating it to SchemaVersion.
func Open(name string) (*Repository, error) {
	dbConn, err := New(name)
	if err != nil {
		return nil, err
	}
	return NewSnapshotRepo(dbConn), nil
}

// OpenReadOnly opens an existing snapshot without writing to it. No migration runs:
// a file without the launch table, or at a different SchemaVersion, returns
// ErrNotSnapshot.
func OpenReadOnly(name string) (*Repository, error) {
	dbConn, err := sqlx.Connect("sqlite", fmt.Sprintf("file:%s?mode=ro", name))
	if err != nil {
		return nil, fmt.Errorf("connecting to snapshot : %w", err)
	}
	dbConn.SetMaxOpenConns(1)

	if err := checkSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	return NewSnapshotRepo(dbConn), nil
}

// Close terminates the database connection.
func (repo *Repository) Close() error {
	err := repo.dbConn.Close()
	if err != nil {
		return fmt.Errorf("closing repo : %w", err)
	}
	return nil
}

// New connects to the SQLite file at name for writing and migrates it to SchemaVersion.
func New(name string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", name))
	if err != nil {
		return nil, fmt.Errorf("connecting to db : %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sqlx.DB) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("setting dialect for migrations : %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("applying migration : %w", err)
	}
	return nil
}

// checkSchema reads the goose version table directly. goose.GetDBVersion would create
// the table when it is missing.
func checkSchema(db *sqlx.DB) error {
	var tables int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('goose_db_version', 'launch')`
	if err := db.Get(&tables, query); err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	if tables != 2 {
		return ErrNotSnapshot
	}

	var version int64
	query = `SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied`
	if err := db.Get(&version, query); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version != SchemaVersion {
		return fmt.Errorf("%w: schema version %d, want %d", ErrNotSnapshot, version, SchemaVersion)
	}
	return nil
}
