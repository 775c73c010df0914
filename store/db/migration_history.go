package db

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type MigrationHistory struct {
	Version   string `db:"version"`
	CreatedTs int64  `db:"created_ts"`
}

// The history table is the one piece of schema shared by both dialects, so
// it is created inline instead of living in the per-dialect schema files.
func ensureMigrationHistory(ctx context.Context, db *sqlx.DB) error {
	stmt := `
		CREATE TABLE IF NOT EXISTS migration_history (
			version TEXT NOT NULL PRIMARY KEY,
			created_ts BIGINT NOT NULL
		)`
	_, err := db.ExecContext(ctx, stmt)
	return err
}

func findMigrationHistoryList(ctx context.Context, db *sqlx.DB) ([]*MigrationHistory, error) {
	stmt := `SELECT version, created_ts FROM migration_history ORDER BY created_ts`
	var list []*MigrationHistory
	if err := db.SelectContext(ctx, &list, stmt); err != nil {
		return nil, err
	}
	return list, nil
}

func upsertMigrationHistory(ctx context.Context, db *sqlx.DB, version string) (*MigrationHistory, error) {
	stmt := db.Rebind(`
		INSERT INTO migration_history (version, created_ts)
		VALUES (?, ?)
		ON CONFLICT (version) DO UPDATE SET created_ts = excluded.created_ts`)

	history := &MigrationHistory{
		Version:   version,
		CreatedTs: time.Now().Unix(),
	}
	if _, err := db.ExecContext(ctx, stmt, history.Version, history.CreatedTs); err != nil {
		return nil, err
	}
	return history, nil
}
