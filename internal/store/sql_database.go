package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-shop-guard/internal/logger"
	"github.com/MKhiriev/go-shop-guard/migrations"
)

// Querier is the subset of [database/sql] operations shared by *sql.DB and
// *sql.Tx. Repository write methods take a Querier so the service layer can
// run a business write and its audit append inside one transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(q Querier) error) error
}

// Database is what the service layer holds: direct query access for
// standalone statements plus transactional execution for writes that must
// commit together. [*DB] is the production implementation.
type Database interface {
	Querier
	TxRunner
}

// DB wraps the raw connection pool with the pieces repositories need: a
// structured logger and an optional error classifier used to decide whether
// a failed transaction is worth retrying.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
	dialect            string
}

// Migrate applies all embedded goose migrations to the connected database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// WithinTransaction runs fn inside a database transaction. The transaction
// is committed when fn returns nil and rolled back otherwise. Failures the
// classifier reports as retryable (serialization failures, deadlocks,
// dropped connections) are retried up to two more times with a fresh
// transaction each attempt.
func (db *DB) WithinTransaction(ctx context.Context, fn func(q Querier) error) error {
	const maxAttempts = 3

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = db.runInTransaction(ctx, fn)
		if err == nil {
			return nil
		}
		if db.classify(err) != Retryable || attempt == maxAttempts {
			return err
		}
		db.logger.Warn().Err(err).Int("attempt", attempt).Msg("retrying transaction after retryable failure")
	}

	return err
}

func (db *DB) runInTransaction(ctx context.Context, fn func(q Querier) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			db.logger.Err(rollbackErr).Msg("transaction rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}
