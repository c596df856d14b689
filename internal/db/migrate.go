package db

import (
	"context"
	"embed"
	"fmt"
	"net/url"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// AllTables lists every table created by the migrations.
var AllTables = []string{"users", "sessions", "posts", "pending_registrations", "storage_objects"}

// URL renders connection options as a postgres URL for the migration driver.
func URL(opt *pg.Options) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(opt.User, opt.Password),
		Host:   opt.Addr,
		Path:   "/" + opt.Database,
	}

	q := url.Values{}
	if opt.TLSConfig == nil {
		q.Set("sslmode", "disable")
	} else {
		q.Set("sslmode", "require")
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// Migrate applies the embedded migrations.
func Migrate(ctx context.Context, databaseURL string) error {
	config, err := pgx.ParseConnectionString(databaseURL)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqldb, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// EnsureTablesExist verifies that the specified tables exist in the database.
func EnsureTablesExist(ctx context.Context, database pg.DBI, tables []string) error {
	for _, tbl := range tables {
		var exists bool
		_, err := database.QueryOneContext(ctx, pg.Scan(&exists), `
			SELECT EXISTS (
				SELECT 1
				FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = ?
			)`, tbl)
		if err != nil {
			return fmt.Errorf("check table %s exists: %w", tbl, err)
		}
		if !exists {
			return fmt.Errorf("table %q does not exist after migrations", tbl)
		}
	}
	return nil
}
