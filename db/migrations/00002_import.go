package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// legacySource is recorded for launches that were stored before imports were tracked.
const legacySource = "legacy"

func init() {
	goose.AddMigrationContext(upAddImports, downDropImports)
}

func upAddImports(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE import (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			row_count INTEGER NOT NULL DEFAULT 0,
			imported_at DATETIME NOT NULL
		);
		ALTER TABLE launch ADD COLUMN import_id TEXT;
	`)
	if err != nil {
		return fmt.Errorf("creating import table : %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM launch").Scan(&count); err != nil {
		return fmt.Errorf("counting existing launches: %w", err)
	}
	if count == 0 {
		return nil
	}

	// Existing launches are attached to a single synthetic import.
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating uuid: %w", err)
	}
	_, err = tx.ExecContext(ctx, "INSERT INTO import (id, source, row_count, imported_at) VALUES (?, ?, ?, ?)", id.String(), legacySource, count, time.Now())
	if err != nil {
		return fmt.Errorf("inserting legacy import : %w", err)
	}
	_, err = tx.ExecContext(ctx, "UPDATE launch SET import_id = ? WHERE import_id IS NULL", id.String())
	if err != nil {
		return fmt.Errorf("backfilling import ids : %w", err)
	}
	return nil
}

func downDropImports(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, `ALTER TABLE launch DROP COLUMN import_id`); err != nil {
		return fmt.Errorf("dropping import_id column: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DROP TABLE import`); err != nil {
		return fmt.Errorf("dropping import table: %w", err)
	}
	return nil
}
