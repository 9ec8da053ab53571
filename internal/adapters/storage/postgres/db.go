package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const createRecordsTableSQL = `
CREATE TABLE IF NOT EXISTS cloud_records (
  handle bigserial PRIMARY KEY,
  record_type text NOT NULL,
  record_name text NOT NULL UNIQUE,
  fields jsonb NOT NULL,
  created_at timestamptz NOT NULL DEFAULT now(),
  modified_at timestamptz NOT NULL DEFAULT now()
)`

const createRecordsTypeIndexSQL = `
CREATE INDEX IF NOT EXISTS cloud_records_type_idx ON cloud_records (record_type, handle)`

// Open abre un pool a Postgres usando pgx (database/sql).
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema crea la tabla de records si no existe. No hace migraciones.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{createRecordsTableSQL, createRecordsTypeIndexSQL} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
