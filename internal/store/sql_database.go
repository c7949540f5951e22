package store

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/migrations"
)

// DB wraps the shared *sql.DB handle together with the driver-specific error
// classifier and the squirrel statement builder configured for the driver's
// placeholder format ($N for pgx, ? for sqlite3). Repositories build all
// their queries through the builder, which keeps them driver-agnostic.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	builder            squirrel.StatementBuilderType
	dialect            string
	logger             *logger.Logger
}

// Migrate applies the embedded goose migrations using the dialect the
// connection was opened with.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// wrapDriverError normalises a raw driver error: retryable failures are
// wrapped with [ErrStoreUnavailable] so the service layer can surface them
// as transient; everything else is returned unchanged.
func (db *DB) wrapDriverError(err error) error {
	if err == nil {
		return nil
	}
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return wrapRetryable(err)
	}
	return err
}

func wrapRetryable(err error) error {
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
