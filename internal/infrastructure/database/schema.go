package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema bootstrap. Statements are idempotent (IF NOT EXISTS) and run in
// dependency order at startup. Languages are fixed seed data; the default
// language (id 1) must be English.

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(255) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS languages (
		id SERIAL PRIMARY KEY,
		code VARCHAR(10) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS category_translations (
		id UUID PRIMARY KEY,
		category_id UUID NOT NULL REFERENCES categories(id),
		language_id INTEGER NOT NULL REFERENCES languages(id),
		name VARCHAR(255) NOT NULL,
		UNIQUE (category_id, language_id)
	)`,

	`CREATE TABLE IF NOT EXISTS games (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		player_count INTEGER NOT NULL,
		image VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		alias VARCHAR(255),
		category_id UUID NOT NULL REFERENCES categories(id),
		creator_id UUID NOT NULL REFERENCES users(id),
		publish BOOLEAN NOT NULL DEFAULT TRUE,
		new BOOLEAN NOT NULL DEFAULT TRUE,
		popularity INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS game_translations (
		id UUID PRIMARY KEY,
		game_id UUID NOT NULL REFERENCES games(id),
		language_id INTEGER NOT NULL REFERENCES languages(id),
		name VARCHAR(255) NOT NULL,
		alias VARCHAR(255),
		description TEXT,
		UNIQUE (game_id, language_id)
	)`,

	`CREATE TABLE IF NOT EXISTS game_slugs (
		game_id UUID NOT NULL REFERENCES games(id),
		language_id INTEGER NOT NULL REFERENCES languages(id),
		slug VARCHAR(255) NOT NULL,
		PRIMARY KEY (game_id, language_id),
		UNIQUE (slug, language_id)
	)`,

	`CREATE TABLE IF NOT EXISTS necessities (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		game_id UUID NOT NULL REFERENCES games(id),
		UNIQUE (name, game_id)
	)`,

	`CREATE TABLE IF NOT EXISTS necessity_translations (
		id UUID PRIMARY KEY,
		necessity_id UUID NOT NULL REFERENCES necessities(id),
		language_id INTEGER NOT NULL REFERENCES languages(id),
		name VARCHAR(255) NOT NULL,
		UNIQUE (necessity_id, language_id)
	)`,

	`CREATE TABLE IF NOT EXISTS submitted_games (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		player_count INTEGER NOT NULL,
		description TEXT NOT NULL,
		alias VARCHAR(255),
		necessities VARCHAR(255),
		category_id UUID NOT NULL REFERENCES categories(id),
		creator_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

var seedLanguages = []struct {
	Code string
	Name string
}{
	{"en", "English"},
	{"nl", "Dutch"},
	{"de", "German"},
	{"fr", "French"},
	{"es", "Spanish"},
	{"it", "Italian"},
}

// Migrate creates missing tables and seeds the language dimension.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}

	for _, lang := range seedLanguages {
		_, err := pool.Exec(ctx,
			`INSERT INTO languages (code, name) VALUES ($1, $2)
			 ON CONFLICT (code) DO NOTHING`,
			lang.Code, lang.Name,
		)
		if err != nil {
			return fmt.Errorf("language seed failed for %s: %w", lang.Code, err)
		}
	}

	return nil
}
