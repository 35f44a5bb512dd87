// AngelaMos | 2026
// migrate.go

package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

type migration struct {
	version int
	name    string
	stmt    string
}

var migrations = []migration{
	{
		version: 1,
		name:    "create_users",
		stmt: `
			CREATE TABLE IF NOT EXISTS users (
				id            UUID PRIMARY KEY,
				name          TEXT NOT NULL,
				email         TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				address       TEXT NOT NULL DEFAULT '',
				role          TEXT NOT NULL DEFAULT 'normal_user',
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		version: 2,
		name:    "create_stores",
		stmt: `
			CREATE TABLE IF NOT EXISTS stores (
				id         UUID PRIMARY KEY,
				name       TEXT NOT NULL,
				email      TEXT NOT NULL,
				address    TEXT NOT NULL DEFAULT '',
				owner_id   UUID REFERENCES users (id),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		version: 3,
		name:    "create_ratings",
		stmt: `
			CREATE TABLE IF NOT EXISTS ratings (
				id         UUID PRIMARY KEY,
				user_id    UUID NOT NULL REFERENCES users (id),
				store_id   UUID NOT NULL REFERENCES stores (id),
				rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (user_id, store_id)
			)`,
	},
	{
		version: 4,
		name:    "index_stores_owner",
		stmt:    `CREATE INDEX IF NOT EXISTS stores_owner_id_idx ON stores (owner_id)`,
	},
	{
		version: 5,
		name:    "index_ratings_store",
		stmt:    `CREATE INDEX IF NOT EXISTS ratings_store_id_idx ON ratings (store_id)`,
	},
}

// Apply runs all pending migrations in order, recording each in
// schema_migrations.
func Apply(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	current := 0
	if err := db.GetContext(ctx, &current, `
		SELECT COALESCE(MAX(version), 0) FROM schema_migrations`); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		if _, err := db.ExecContext(ctx, m.stmt); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}

		if _, err := db.ExecContext(ctx, `
			INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name,
		); err != nil {
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}

		slog.Info("migration applied", "version", m.version, "name", m.name)
	}

	return nil
}
