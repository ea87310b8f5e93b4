package borrowrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Touati-Fadwa/Micro-books/model"
)

var (
	// ErrNoAvailableCopies is returned by Create when every copy is out.
	ErrNoAvailableCopies = errors.New("no available copies")
	// ErrAlreadyReturned is returned by Return on a second return attempt.
	ErrAlreadyReturned = errors.New("borrowing already returned")
)

// ListRow is a borrowing joined with its book summary.
type ListRow struct {
	model.Borrowing
	BookTitle  string  `db:"book_title"`
	BookAuthor string  `db:"book_author"`
	BookCover  *string `db:"book_cover"`
}

type Repo interface {
	BookExists(ctx context.Context, bookID int64) (bool, error)
	Create(ctx context.Context, b *model.Borrowing) error
	Return(ctx context.Context, id int64, at time.Time) (*model.Borrowing, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]ListRow, error)
	ListByStudent(ctx context.Context, studentID int64) ([]ListRow, error)
}

type repo struct{ db *sqlx.DB }

func New(db *sqlx.DB) Repo { return &repo{db} }

func (r *repo) BookExists(ctx context.Context, bookID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM books WHERE id=$1)`
	var ok bool
	if err := r.db.GetContext(ctx, &ok, q, bookID); err != nil {
		return false, err
	}
	return ok, nil
}

// Create decrements the book's availability and inserts the borrowing in
// one transaction. The guarded UPDATE is what makes concurrent borrow
// requests safe: two requests racing for the last copy cannot both pass
// the available_quantity > 0 check.
func (r *repo) Create(ctx context.Context, b *model.Borrowing) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const dec = `
UPDATE books
SET available_quantity = available_quantity - 1, updated_at = now()
WHERE id = $1
  AND available_quantity > 0`
	res, err := tx.ExecContext(ctx, dec, b.BookID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		err = ErrNoAvailableCopies
		return err
	}

	const ins = `
INSERT INTO borrowings (book_id, student_id, student_name, student_email,
                        borrow_date, due_date, status, notes)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
RETURNING id, created_at, updated_at`
	if err = tx.QueryRowxContext(ctx, ins,
		b.BookID, b.StudentID, b.StudentName, b.StudentEmail,
		b.BorrowDate, b.DueDate, b.Status, b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit()
}

// Return marks the borrowing returned and gives the copy back, holding a
// row lock across the double-return check. The increment is clamped to
// the book's quantity to absorb drift from stock shrunk while out.
func (r *repo) Return(ctx context.Context, id int64, at time.Time) (b *model.Borrowing, err error) {
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
SELECT id, book_id, student_id, student_name, student_email, borrow_date,
       due_date, return_date, status, notes, created_at, updated_at
FROM borrowings
WHERE id=$1
FOR UPDATE`
	var cur model.Borrowing
	if err = tx.GetContext(ctx, &cur, sel, id); err != nil {
		return nil, err
	}
	if cur.ReturnDate != nil {
		err = ErrAlreadyReturned
		return nil, err
	}

	const upd = `
UPDATE borrowings
SET return_date=$2, status=$3, updated_at=now()
WHERE id=$1
RETURNING return_date, status, updated_at`
	if err = tx.QueryRowxContext(ctx, upd, id, at, model.StatusReturned).
		Scan(&cur.ReturnDate, &cur.Status, &cur.UpdatedAt); err != nil {
		return nil, err
	}

	const inc = `
UPDATE books
SET available_quantity = LEAST(quantity, available_quantity + 1), updated_at = now()
WHERE id = $1`
	if _, err = tx.ExecContext(ctx, inc, cur.BookID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &cur, nil
}

// Delete removes the borrowing in any state. An outstanding borrowing
// gives its copy back first, a returned one already has.
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

	const sel = `SELECT book_id, return_date FROM borrowings WHERE id=$1 FOR UPDATE`
	var bookID int64
	var returnDate *time.Time
	if err = tx.QueryRowxContext(ctx, sel, id).Scan(&bookID, &returnDate); err != nil {
		return err
	}

	if returnDate == nil {
		const inc = `
UPDATE books
SET available_quantity = LEAST(quantity, available_quantity + 1), updated_at = now()
WHERE id = $1`
		if _, err = tx.ExecContext(ctx, inc, bookID); err != nil {
			return err
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM borrowings WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit()
}

const listSelect = `
SELECT br.id, br.book_id, br.student_id, br.student_name, br.student_email,
       br.borrow_date, br.due_date, br.return_date, br.status, br.notes,
       br.created_at, br.updated_at,
       b.title  AS book_title,
       b.author AS book_author,
       b.cover_image AS book_cover
FROM borrowings br
JOIN books b ON b.id = br.book_id`

func (r *repo) ListAll(ctx context.Context) ([]ListRow, error) {
	const q = listSelect + `
ORDER BY br.created_at DESC, br.id DESC`
	var out []ListRow
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) ListByStudent(ctx context.Context, studentID int64) ([]ListRow, error) {
	const q = listSelect + `
WHERE br.student_id = $1
ORDER BY br.created_at DESC, br.id DESC`
	var out []ListRow
	if err := r.db.SelectContext(ctx, &out, q, studentID); err != nil {
		return nil, err
	}
	return out, nil
}
