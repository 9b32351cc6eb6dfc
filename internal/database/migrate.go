package database

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies the embedded .up.sql scripts that are not yet recorded in
// schema_migrations, each in its own transaction.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("ensuring schema_migrations table: %w", err)
	}

	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		version := migrationVersion(name)

		var applied int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&applied); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if applied > 0 {
			continue
		}

		if err := applyMigration(db, name, version); err != nil {
			return err
		}
		slog.Info("applied migration", "version", version, "file", name)
	}

	return nil
}

func applyMigration(db *sql.DB, name string, version int) error {
	script, err := migrationFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading migration %s: %w", name, err)
	}

	transaction, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting migration %d: %w", version, err)
	}
	defer transaction.Rollback()

	if _, err := transaction.Exec(string(script)); err != nil {
		return fmt.Errorf("applying migration %s: %w", name, err)
	}
	if _, err := transaction.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return fmt.Errorf("recording migration %d: %w", version, err)
	}
	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", version, err)
	}
	return nil
}

// migrationVersion reads the numeric prefix of a migration file name, e.g. 2
// from migrations/002_journal_nutrition.up.sql.
func migrationVersion(name string) int {
	var version int
	fmt.Sscanf(strings.TrimPrefix(name, "migrations/"), "%d_", &version)
	return version
}
