// Package migrations embeds the goose schema migrations for both supported
// SQL dialects and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// Dialects understood by [Migrate] and [Rollback]. They match the driver
// names used in configuration.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var ErrUnknownDialect = errors.New("unknown migration dialect")

func newProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	if db == nil {
		return nil, errors.New("migration error: db is nil")
	}

	var gooseDialect goose.Dialect
	switch dialect {
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("migration error: %w: %q", ErrUnknownDialect, dialect)
	}

	fsys, err := fs.Sub(embedMigrations, dialect)
	if err != nil {
		return nil, fmt.Errorf("migration error opening %s migrations: %w", dialect, err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("migration error creating provider: %w", err)
	}

	return provider, nil
}

// Migrate applies every pending migration of dialect and returns how many
// were applied.
func Migrate(ctx context.Context, db *sql.DB, dialect string) (int, error) {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return 0, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("migration error: %w", err)
	}

	return len(results), nil
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, db *sql.DB, dialect string) error {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}

	if _, err := provider.Down(ctx); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
