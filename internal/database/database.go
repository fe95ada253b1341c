// Package database opens the PostgreSQL pool that holds radiograph records.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"xraysim/internal/config"
)

const (
	// shows up as pg_stat_activity.application_name
	applicationName = "xraysim"
	pingTimeout     = 5 * time.Second
)

var sqlOpen = sql.Open

// BuildPostgresDSN turns the database settings into a postgres:// URL, e.g.
// postgres://user:pass@db:5432/xraysim?application_name=xraysim&sslmode=disable
func BuildPostgresDSN(c config.DatabaseConfig) (string, error) {
	if missing := missingFields(c); len(missing) > 0 {
		return "", fmt.Errorf("invalid database config: missing %s", strings.Join(missing, ", "))
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	q.Set("application_name", applicationName)
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

func missingFields(c config.DatabaseConfig) []string {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"host", c.Host},
		{"port", c.Port},
		{"user", c.User},
		{"name", c.Name},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// NewPostgres opens a traced pgx pool and pings it. The ping is bounded by
// ctx and pingTimeout; the pool is closed again if it fails.
func NewPostgres(ctx context.Context, c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildPostgresDSN(c)
	if err != nil {
		return nil, err
	}

	driverName, err := otelsql.Register("pgx",
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	configurePool(db, c)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// configurePool applies the positive pool limits in c and leaves the rest at
// the database/sql defaults.
func configurePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}
