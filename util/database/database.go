// Package database owns the Postgres handle: open/ping on startup,
// schema application, optional default-data seeding, close on shutdown.
package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx as database/sql driver
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id          SERIAL PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS books (
	id                 SERIAL PRIMARY KEY,
	title              TEXT NOT NULL,
	author             TEXT NOT NULL,
	isbn               TEXT,
	publication_year   INT,
	publisher          TEXT,
	description        TEXT,
	cover_image        TEXT,
	quantity           INT NOT NULL DEFAULT 1 CHECK (quantity >= 1),
	available_quantity INT NOT NULL CHECK (available_quantity >= 0),
	category_id        INT NOT NULL REFERENCES categories(id),
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (available_quantity <= quantity)
);

CREATE TABLE IF NOT EXISTS borrowings (
	id            SERIAL PRIMARY KEY,
	book_id       INT NOT NULL REFERENCES books(id),
	student_id    INT NOT NULL,
	student_name  TEXT NOT NULL,
	student_email TEXT NOT NULL,
	borrow_date   TIMESTAMPTZ NOT NULL DEFAULT now(),
	due_date      TIMESTAMPTZ NOT NULL,
	return_date   TIMESTAMPTZ,
	status        TEXT NOT NULL DEFAULT 'borrowed',
	notes         TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_books_category ON books(category_id);
CREATE INDEX IF NOT EXISTS idx_borrowings_book ON borrowings(book_id);
CREATE INDEX IF NOT EXISTS idx_borrowings_student ON borrowings(student_id);
`

// DefaultCategories are seeded on startup unless disabled via config.
var DefaultCategories = []string{
	"Roman",
	"Science-Fiction",
	"Informatique",
	"Histoire",
	"Mathématiques",
	"Physique",
	"Biologie",
	"Économie",
}

func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SeedDefaultCategories inserts the stock category set, skipping names
// that already exist.
func SeedDefaultCategories(ctx context.Context, db *sqlx.DB) error {
	const q = `INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`
	for _, name := range DefaultCategories {
		if _, err := db.ExecContext(ctx, q, name); err != nil {
			return err
		}
	}
	return nil
}
