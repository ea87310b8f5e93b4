package bookrepo

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jmoiron/sqlx"

	"github.com/Touati-Fadwa/Micro-books/inventory"
	"github.com/Touati-Fadwa/Micro-books/model"
)

// ErrActiveLoans is returned by Delete when copies are still out.
var ErrActiveLoans = errors.New("book has active loans")

// Filter narrows List; zero values mean "no constraint". Substring
// matches are case-insensitive; all present filters are ANDed.
type Filter struct {
	Title      string
	Author     string
	CategoryID int64
}

// Patch carries a partial update. A nil field keeps the stored value;
// a non-nil field overwrites it, even with an empty string.
type Patch struct {
	Title           *string
	Author          *string
	ISBN            *string
	PublicationYear *int
	Publisher       *string
	Description     *string
	CoverImage      *string
	Quantity        *int
	CategoryID      *int64
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context, f Filter) ([]model.BookView, error)
	ByID(ctx context.Context, id int64) (*model.BookView, error)
	Update(ctx context.Context, id int64, p Patch) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
INSERT INTO books (title, author, isbn, publication_year, publisher,
                   description, cover_image, quantity, available_quantity, category_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING id, created_at, updated_at`
	return r.db.QueryRowxContext(ctx, q,
		b.Title, b.Author, b.ISBN, b.PublicationYear, b.Publisher,
		b.Description, b.CoverImage, b.Quantity, b.AvailableQuantity, b.CategoryID,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

var dialect = goqu.Dialect("postgres")

func enrichedSelect() *goqu.SelectDataset {
	return dialect.
		From(goqu.T("books").As("b")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.Ex{"b.category_id": goqu.I("c.id")})).
		Select(
			goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.author"), goqu.I("b.isbn"),
			goqu.I("b.publication_year"), goqu.I("b.publisher"), goqu.I("b.description"),
			goqu.I("b.cover_image"), goqu.I("b.quantity"), goqu.I("b.available_quantity"),
			goqu.I("b.category_id"), goqu.I("b.created_at"), goqu.I("b.updated_at"),
			goqu.I("c.name").As("category_name"),
		)
}

func (r *repo) List(ctx context.Context, f Filter) ([]model.BookView, error) {
	ds := enrichedSelect().Order(goqu.I("b.created_at").Desc())

	if f.Title != "" {
		ds = ds.Where(goqu.I("b.title").ILike("%" + f.Title + "%"))
	}
	if f.Author != "" {
		ds = ds.Where(goqu.I("b.author").ILike("%" + f.Author + "%"))
	}
	if f.CategoryID > 0 {
		ds = ds.Where(goqu.I("b.category_id").Eq(f.CategoryID))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}

	var out []model.BookView
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Available = out[i].AvailableQuantity > 0
	}
	return out, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.BookView, error) {
	query, args, err := enrichedSelect().Where(goqu.I("b.id").Eq(id)).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	var v model.BookView
	if err := r.db.GetContext(ctx, &v, query, args...); err != nil {
		return nil, err
	}
	v.Available = v.AvailableQuantity > 0
	return &v, nil
}

// Update applies the patch under a row lock so the availability
// recomputation reads a consistent quantity/available pair.
func (r *repo) Update(ctx context.Context, id int64, p Patch) (b *model.Book, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const sel = `
SELECT id, title, author, isbn, publication_year, publisher, description,
       cover_image, quantity, available_quantity, category_id, created_at, updated_at
FROM books
WHERE id=$1
FOR UPDATE`
	var cur model.Book
	if err = tx.GetContext(ctx, &cur, sel, id); err != nil {
		return nil, err
	}

	if p.Title != nil {
		cur.Title = *p.Title
	}
	if p.Author != nil {
		cur.Author = *p.Author
	}
	if p.ISBN != nil {
		cur.ISBN = p.ISBN
	}
	if p.PublicationYear != nil {
		cur.PublicationYear = p.PublicationYear
	}
	if p.Publisher != nil {
		cur.Publisher = p.Publisher
	}
	if p.Description != nil {
		cur.Description = p.Description
	}
	if p.CoverImage != nil {
		cur.CoverImage = p.CoverImage
	}
	if p.CategoryID != nil {
		cur.CategoryID = *p.CategoryID
	}
	if p.Quantity != nil {
		cur.AvailableQuantity = inventory.RecomputeAvailable(cur.Quantity, cur.AvailableQuantity, *p.Quantity)
		cur.Quantity = *p.Quantity
	}

	const upd = `
UPDATE books
SET title=$2, author=$3, isbn=$4, publication_year=$5, publisher=$6,
    description=$7, cover_image=$8, quantity=$9, available_quantity=$10,
    category_id=$11, updated_at=now()
WHERE id=$1
RETURNING updated_at`
	if err = tx.QueryRowxContext(ctx, upd,
		cur.ID, cur.Title, cur.Author, cur.ISBN, cur.PublicationYear, cur.Publisher,
		cur.Description, cur.CoverImage, cur.Quantity, cur.AvailableQuantity, cur.CategoryID,
	).Scan(&cur.UpdatedAt); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &cur, nil
}

// Delete refuses while any copy is out (quantity != available_quantity).
func (r *repo) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const sel = `SELECT quantity, available_quantity FROM books WHERE id=$1 FOR UPDATE`
	var quantity, available int
	if err = tx.QueryRowxContext(ctx, sel, id).Scan(&quantity, &available); err != nil {
		return err
	}
	if quantity != available {
		err = ErrActiveLoans
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM books WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit()
}
