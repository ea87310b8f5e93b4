package categoryrepo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Touati-Fadwa/Micro-books/model"
)

type Repo interface {
	Create(ctx context.Context, name string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	ByID(ctx context.Context, id int64) (*model.Category, error)
	ByName(ctx context.Context, name string) (*model.Category, error)
	UpdateName(ctx context.Context, id int64, name string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
	CountBooks(ctx context.Context, categoryID int64) (int64, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, name string) (*model.Category, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
RETURNING id, name, created_at, updated_at`
	var c model.Category
	if err := r.db.GetContext(ctx, &c, q, name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) List(ctx context.Context) ([]model.Category, error) {
	const q = `
SELECT id, name, created_at, updated_at
FROM categories
ORDER BY name ASC`
	var out []model.Category
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Category, error) {
	const q = `SELECT id, name, created_at, updated_at FROM categories WHERE id=$1`
	var c model.Category
	if err := r.db.GetContext(ctx, &c, q, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) ByName(ctx context.Context, name string) (*model.Category, error) {
	const q = `SELECT id, name, created_at, updated_at FROM categories WHERE name=$1`
	var c model.Category
	if err := r.db.GetContext(ctx, &c, q, name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) UpdateName(ctx context.Context, id int64, name string) (*model.Category, error) {
	const q = `
UPDATE categories
SET name=$2, updated_at=now()
WHERE id=$1
RETURNING id, name, created_at, updated_at`
	var c model.Category
	if err := r.db.GetContext(ctx, &c, q, id, name); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM categories WHERE id=$1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

func (r *repo) CountBooks(ctx context.Context, categoryID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM books WHERE category_id=$1`
	var n int64
	if err := r.db.GetContext(ctx, &n, q, categoryID); err != nil {
		return 0, err
	}
	return n, nil
}
