package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	_ "feriwala/database/migrations"
)

//go:embed migrations/*.sql migrations/*.go
var embedMigrations embed.FS

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an insert or update hits a unique key.
	ErrConflict = errors.New("already exists")
)

// Open connects to the sqlite file at path. Migrations are not applied; see Migrate.
func Open(path string) (*sqlx.DB, error) {
	dbConn, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening db %s: %w", path, err)
	}
	// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY between them.
	dbConn.SetMaxOpenConns(1)

	if err := dbConn.Ping(); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("connecting to db %s: %w", path, err)
	}
	return dbConn, nil
}

func prepareGoose() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return fmt.Errorf("setting dialect for migrations: %w", err)
	}
	return nil
}

// Migrate applies every pending migration.
func Migrate(db *sqlx.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(db *sqlx.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.Down(db.DB, "migrations"); err != nil {
		return fmt.Errorf("rolling back migration: %w", err)
	}
	return nil
}

// MigrationVersion returns the current schema version.
func MigrationVersion(db *sqlx.DB) (int64, error) {
	if err := prepareGoose(); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersion(db.DB)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func checkAffected(res interface{ RowsAffected() (int64, error) }, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("fetching rows affected for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
