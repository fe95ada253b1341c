package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"xraysim/internal/logjson"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_radiographs",
		SQL: `CREATE TABLE IF NOT EXISTS radiographs (
  id           UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  current_ma   DOUBLE PRECISION NOT NULL,
  voltage_kvp  DOUBLE PRECISION NOT NULL,
  width        INTEGER          NOT NULL CHECK (width > 0),
  height       INTEGER          NOT NULL CHECK (height > 0),
  format       TEXT             NOT NULL,
  storage_path TEXT             NOT NULL UNIQUE,
  size         BIGINT           NOT NULL CHECK (size >= 0),
  content_type TEXT             NOT NULL,
  created_at   TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_radiographs_params",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_radiographs_params ON radiographs (current_ma, voltage_kvp);`,
	},
	{
		Name: "create_index_radiographs_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_radiographs_created_at ON radiographs (created_at);`,
	},
}

// EnsureMigrated checks if the 'radiographs' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *logjson.Logger, dbHost string) error {
	start := time.Now()

	logger.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.radiographs') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logger.Log(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.Log(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Log(map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.Log(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logger.Log(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"steps":       len(steps),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
