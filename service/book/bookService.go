package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	bookrepo "github.com/Touati-Fadwa/Micro-books/repository/book"

	"github.com/Touati-Fadwa/Micro-books/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrBadInput         ErrCode = "BAD_INPUT"
	ErrNotFound         ErrCode = "NOT_FOUND"
	ErrCategoryNotFound ErrCode = "CATEGORY_NOT_FOUND"
	ErrHasActiveLoans   ErrCode = "HAS_ACTIVE_LOANS"
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

// repository shapes
type (
	Filter = bookrepo.Filter
	Patch  = bookrepo.Patch
)

type CreateInput struct {
	Title           string
	Author          string
	ISBN            *string
	PublicationYear *int
	Publisher       *string
	Description     *string
	CoverImage      *string
	Quantity        *int
	CategoryID      int64
}

type Repo = bookrepo.Repo

// CategoryLookup is the slice of the category repository the book
// service needs for referential checks.
type CategoryLookup interface {
	ByID(ctx context.Context, id int64) (*model.Category, error)
}

type Service interface {
	List(ctx context.Context, f Filter) ([]model.BookView, error)
	Detail(ctx context.Context, id int64) (*model.BookView, error)
	Create(ctx context.Context, in CreateInput) (*model.Book, error)
	Update(ctx context.Context, id int64, p Patch) (*model.Book, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	r Repo
	c CategoryLookup
}

func New(r Repo, c CategoryLookup) Service { return &service{r: r, c: c} }

func (s *service) List(ctx context.Context, f Filter) ([]model.BookView, error) {
	return s.r.List(ctx, f)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.BookView, error) {
	v, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotFound)
	}
	return v, err
}

func (s *service) Create(ctx context.Context, in CreateInput) (*model.Book, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Author) == "" || in.CategoryID <= 0 {
		return nil, makeErr(ErrBadInput)
	}
	if err := s.categoryExists(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	quantity := 1
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, makeErr(ErrBadInput)
		}
		quantity = *in.Quantity
	}

	b := &model.Book{
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		PublicationYear: in.PublicationYear,
		Publisher:       in.Publisher,
		Description:     in.Description,
		CoverImage:      in.CoverImage,
		Quantity:        quantity,
		// every copy of a new book starts on the shelf
		AvailableQuantity: quantity,
		CategoryID:        in.CategoryID,
	}
	if err := s.r.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, id int64, p Patch) (*model.Book, error) {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, makeErr(ErrBadInput)
	}
	if p.Author != nil && strings.TrimSpace(*p.Author) == "" {
		return nil, makeErr(ErrBadInput)
	}
	if p.Quantity != nil && *p.Quantity < 1 {
		return nil, makeErr(ErrBadInput)
	}
	if p.CategoryID != nil {
		if err := s.categoryExists(ctx, *p.CategoryID); err != nil {
			return nil, err
		}
	}
	b, err := s.r.Update(ctx, id, p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotFound)
	}
	return b, err
}

func (s *service) Delete(ctx context.Context, id int64) error {
	err := s.r.Delete(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return makeErr(ErrNotFound)
	case errors.Is(err, bookrepo.ErrActiveLoans):
		return makeErr(ErrHasActiveLoans)
	}
	return err
}

func (s *service) categoryExists(ctx context.Context, id int64) error {
	if _, err := s.c.ByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrCategoryNotFound)
		}
		return err
	}
	return nil
}
