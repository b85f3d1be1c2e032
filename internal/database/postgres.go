package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPostgresPool(databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the tables the store needs. Statements are idempotent
// so startup is safe against an already-initialized database.
func EnsureSchema(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS student_profiles (
			session_key TEXT PRIMARY KEY,
			name        TEXT NOT NULL DEFAULT '',
			age         INTEGER NOT NULL DEFAULT 0,
			interests   TEXT[] NOT NULL DEFAULT '{}',
			skills      TEXT[] NOT NULL DEFAULT '{}',
			preferences JSONB NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			seq         BIGSERIAL PRIMARY KEY,
			session_key TEXT NOT NULL,
			sender      TEXT NOT NULL CHECK (sender IN ('user', 'bot')),
			message     TEXT NOT NULL,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_session
			ON chat_messages (session_key, created_at)`,
		`CREATE TABLE IF NOT EXISTS cuestionarios (
			id          UUID PRIMARY KEY,
			pregunta1  TEXT NOT NULL DEFAULT '', pregunta2  TEXT NOT NULL DEFAULT '',
			pregunta3  TEXT NOT NULL DEFAULT '', pregunta4  TEXT NOT NULL DEFAULT '',
			pregunta5  TEXT NOT NULL DEFAULT '', pregunta6  TEXT NOT NULL DEFAULT '',
			pregunta7  TEXT NOT NULL DEFAULT '', pregunta8  TEXT NOT NULL DEFAULT '',
			pregunta9  TEXT NOT NULL DEFAULT '', pregunta10 TEXT NOT NULL DEFAULT '',
			pregunta11 TEXT NOT NULL DEFAULT '', pregunta12 TEXT NOT NULL DEFAULT '',
			pregunta13 TEXT NOT NULL DEFAULT '', pregunta14 TEXT NOT NULL DEFAULT '',
			pregunta15 TEXT NOT NULL DEFAULT '', pregunta16 TEXT NOT NULL DEFAULT '',
			pregunta17 TEXT NOT NULL DEFAULT '', pregunta18 TEXT NOT NULL DEFAULT '',
			fecha_envio TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	return nil
}
