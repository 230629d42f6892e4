package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
	"github.com/MKhiriev/go-course-catalog/migrations"
	sq "github.com/Masterminds/squirrel"
)

// DB wraps the connection pool with the dialect-specific bits the
// repositories need: placeholder format, error classification and the
// per-operation deadline.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	queryTimeout       time.Duration
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Dialect returns the configured driver name.
func (db *DB) Dialect() string {
	return db.dialect
}

// Migrate applies the pending schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	applied, err := migrations.Migrate(ctx, db.DB, db.dialect)
	if err != nil {
		return err
	}
	db.logger.Info().Int("applied", applied).Str("dialect", db.dialect).Msg("database migrated")
	return nil
}

// Rollback reverts the latest schema migration.
func (db *DB) Rollback(ctx context.Context) error {
	return migrations.Rollback(ctx, db.DB, db.dialect)
}

func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == config.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

type txKey struct{}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx or the pool.
func (db *DB) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db.DB
}

func (db *DB) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if db.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, db.queryTimeout)
}

// InTx implements [Transactor]. Nested calls join the outer transaction.
// PostgreSQL transactions run at READ COMMITTED; SQLite transactions are
// serializable by construction.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	var opts *sql.TxOptions
	if db.dialect == config.DriverPostgres {
		opts = &sql.TxOptions{Isolation: sql.LevelReadCommitted}
	}

	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		log.Err(err).Str("func", "*DB.InTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*DB.InTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// exists runs a COUNT query built by b and reports whether it is positive.
func (db *DB) exists(ctx context.Context, b sq.SelectBuilder) (bool, error) {
	n, err := db.count(ctx, b)
	return n > 0, err
}

func (db *DB) count(ctx context.Context, b sq.SelectBuilder) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := db.conn(ctx).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return n, nil
}

const (
	readAttempts     = 3
	readInitialDelay = 20 * time.Millisecond
)

// retryRead runs fn again while the classificator reports the failure as
// transient. Only idempotent reads go through here.
func (db *DB) retryRead(ctx context.Context, fn func() error) error {
	delay := readInitialDelay
	var err error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable || attempt == readAttempts {
			return err
		}

		logger.FromContext(ctx).Warn().Err(err).Int("attempt", attempt).Msg("retrying read after transient database error")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}

// uniqueViolation reports the violated unique constraint of err, if any.
func (db *DB) uniqueViolation(err error) (string, bool) {
	if db.errorClassificator == nil {
		return "", false
	}
	return db.errorClassificator.UniqueViolation(err)
}
