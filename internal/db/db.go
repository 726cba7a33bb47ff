package db

import (
	"billed/internal/config"
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresConnection(cfg *config.Config) (*pgxpool.Pool, error) {
	dsn := cfg.GetDSN()
	pool, err := pgxpool.New(context.Background(), dsn)

	if err != nil {
		return nil, err
	}

	err = pool.Ping(context.Background())
	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	type          TEXT NOT NULL DEFAULT 'Employee',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bills (
	id          UUID PRIMARY KEY,
	email       TEXT NOT NULL,
	type        TEXT NOT NULL DEFAULT '',
	name        TEXT NOT NULL DEFAULT '',
	amount      INTEGER NOT NULL DEFAULT 0,
	date        TEXT NOT NULL DEFAULT '',
	vat         TEXT NOT NULL DEFAULT '',
	pct         INTEGER NOT NULL DEFAULT 20,
	commentary  TEXT NOT NULL DEFAULT '',
	file_url    TEXT,
	file_name   TEXT,
	file_path   TEXT,
	status      TEXT NOT NULL DEFAULT 'pending',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS bills_email_idx ON bills (email);

CREATE TABLE IF NOT EXISTS token_blacklist (
	token      TEXT PRIMARY KEY,
	expires_at TIMESTAMPTZ NOT NULL
);
`

// Migrate создаёт таблицы, если их ещё нет.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
