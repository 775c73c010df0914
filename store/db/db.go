// Package db opens the relational database and applies the embedded schema.
package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/hapinus/booksync/log"
	"github.com/hapinus/booksync/util"
	"github.com/hapinus/booksync/version"
	"go.uber.org/zap"
)

//go:embed migration
var migrationFS embed.FS

// NewDB opens a database for the given DSN. A postgres:// or postgresql://
// URL goes through lib/pq, anything else is treated as a sqlite file path.
func NewDB(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is required")
	}

	driver := "sqlite"
	if util.HasPrefixes(dsn, "postgres://", "postgresql://") {
		driver = "postgres"
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s database", driver)
	}
	return db, nil
}

// Migrate applies the latest schema for the connected driver when the
// database has no migration history yet, and records the applied version.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if err := ensureMigrationHistory(ctx, db); err != nil {
		return errors.Wrap(err, "unable to create migration history table")
	}

	history, err := findMigrationHistoryList(ctx, db)
	if err != nil {
		return errors.Wrap(err, "unable to read migration history")
	}
	if len(history) > 0 {
		log.Debug("schema already applied", zap.String("version", history[len(history)-1].Version))
		return nil
	}

	if err := applyLatestSchema(ctx, db); err != nil {
		return errors.Wrap(err, "unable to apply latest schema")
	}
	if _, err := upsertMigrationHistory(ctx, db, version.Version); err != nil {
		return errors.Wrap(err, "unable to record migration history")
	}
	log.Info("schema applied", zap.String("version", version.Version))
	return nil
}

func applyLatestSchema(ctx context.Context, db *sqlx.DB) error {
	name := fmt.Sprintf("migration/schema_%s.sql", db.DriverName())
	buf, err := migrationFS.ReadFile(name)
	if err != nil {
		return errors.Wrapf(err, "unable to read schema file %s", name)
	}
	if _, err := db.ExecContext(ctx, string(buf)); err != nil {
		return errors.Wrapf(err, "unable to execute schema file %s", name)
	}
	return nil
}
