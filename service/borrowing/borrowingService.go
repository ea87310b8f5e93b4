package borrowsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	borrowrepo "github.com/Touati-Fadwa/Micro-books/repository/borrowing"

	"github.com/Touati-Fadwa/Micro-books/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrBadInput        ErrCode = "BAD_INPUT"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrNotAvailable    ErrCode = "NOT_AVAILABLE"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type CreateInput struct {
	BookID       int64
	StudentID    int64
	StudentName  string
	StudentEmail string
	DueDate      time.Time
	Notes        *string
}

type Repo = borrowrepo.Repo

type Service interface {
	Create(ctx context.Context, in CreateInput) (*model.Borrowing, error)
	Return(ctx context.Context, id int64) (*model.Borrowing, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]model.BorrowingDetail, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.BorrowingDetail, error)
}

type service struct {
	r   Repo
	now func() time.Time
}

func New(r Repo) Service {
	return &service{r: r, now: func() time.Time { return time.Now().UTC() }}
}

// NewWithClock is used by tests to pin borrow/return timestamps.
func NewWithClock(r Repo, now func() time.Time) Service {
	return &service{r: r, now: now}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Borrowing, error) {
	if in.BookID <= 0 || in.StudentID <= 0 ||
		strings.TrimSpace(in.StudentName) == "" ||
		strings.TrimSpace(in.StudentEmail) == "" ||
		in.DueDate.IsZero() {
		return nil, makeErr(ErrBadInput)
	}

	exists, err := s.r.BookExists(ctx, in.BookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, makeErr(ErrBookNotFound)
	}

	b := &model.Borrowing{
		BookID:       in.BookID,
		StudentID:    in.StudentID,
		StudentName:  in.StudentName,
		StudentEmail: in.StudentEmail,
		BorrowDate:   s.now(),
		DueDate:      in.DueDate,
		Status:       model.StatusBorrowed,
		Notes:        in.Notes,
	}
	if err := s.r.Create(ctx, b); err != nil {
		if errors.Is(err, borrowrepo.ErrNoAvailableCopies) {
			return nil, makeErr(ErrNotAvailable)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Return(ctx context.Context, id int64) (*model.Borrowing, error) {
	b, err := s.r.Return(ctx, id, s.now())
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, makeErr(ErrNotFound)
	case errors.Is(err, borrowrepo.ErrAlreadyReturned):
		return nil, makeErr(ErrAlreadyReturned)
	}
	return b, err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return makeErr(ErrNotFound)
	}
	return err
}

func (s *service) ListAll(ctx context.Context) ([]model.BorrowingDetail, error) {
	rows, err := s.r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.BorrowingDetail, 0, len(rows))
	for _, row := range rows {
		d := toDetail(row)
		d.Student = &model.Borrower{
			ID:    row.StudentID,
			Name:  row.StudentName,
			Email: row.StudentEmail,
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *service) ListByStudent(ctx context.Context, studentID int64) ([]model.BorrowingDetail, error) {
	rows, err := s.r.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := make([]model.BorrowingDetail, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDetail(row))
	}
	return out, nil
}

func toDetail(row borrowrepo.ListRow) model.BorrowingDetail {
	return model.BorrowingDetail{
		ID: row.ID,
		Book: model.BorrowedBook{
			ID:         row.BookID,
			Title:      row.BookTitle,
			Author:     row.BookAuthor,
			CoverImage: row.BookCover,
		},
		BorrowDate: row.BorrowDate,
		DueDate:    row.DueDate,
		ReturnDate: row.ReturnDate,
		Status:     row.Status,
		Notes:      row.Notes,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
