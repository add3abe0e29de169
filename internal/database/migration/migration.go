// Package migration creates the PostgreSQL schema of the JSONB document tables.
package migration

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

type migrationStep struct {
	Name string
	SQL  string
}

func documentTable(name string) string {
	return `CREATE TABLE IF NOT EXISTS ` + name + ` (
  id  TEXT      PRIMARY KEY,
  seq BIGSERIAL NOT NULL,
  doc JSONB     NOT NULL
);`
}

var steps = []migrationStep{
	{Name: "create_table_pets", SQL: documentTable("pets")},
	{Name: "create_table_users", SQL: documentTable("users")},
	{Name: "create_table_adoptions", SQL: documentTable("adoptions")},
	{
		Name: "create_index_users_email_unique",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique ON users ((doc->>'email'));`,
	},
	{
		Name: "create_index_pets_doc",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_pets_doc ON pets USING GIN (doc jsonb_path_ops);`,
	},
	{
		Name: "create_index_adoptions_doc",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_adoptions_doc ON adoptions USING GIN (doc jsonb_path_ops);`,
	},
}

// EnsureMigrated runs the migration steps unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.InfoContext(ctx, "db_migration_check", "status", "starting")

	var exists bool
	query := "SELECT to_regclass('public.adoptions') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.ErrorContext(ctx, "db_migration_failed",
			"status", "error",
			"error_message", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return errors.Wrap(err, "failed to check sentinel table")
	}

	if exists {
		log.InfoContext(ctx, "db_migration_skip",
			"status", "success",
			"detail", "schema already exists, skipping migration",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.InfoContext(ctx, "db_migration_start", "status", "in_progress")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.ErrorContext(ctx, "db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return errors.Wrapf(err, "migration step %s failed", step.Name)
		}
		log.InfoContext(ctx, "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.InfoContext(ctx, "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
