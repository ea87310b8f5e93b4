package categorysvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	categoryrepo "github.com/Touati-Fadwa/Micro-books/repository/category"

	"github.com/Touati-Fadwa/Micro-books/model"
)

// errors used by controllers

type ErrCode string

const (
	ErrBadInput  ErrCode = "BAD_INPUT"
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrNameTaken ErrCode = "NAME_TAKEN"
	ErrHasBooks  ErrCode = "HAS_BOOKS"
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

type Repo = categoryrepo.Repo

type Service interface {
	List(ctx context.Context) ([]model.Category, error)
	Detail(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Rename(ctx context.Context, id int64, name string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Category, error) {
	return s.r.List(ctx)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Category, error) {
	c, err := s.r.ByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, makeErr(ErrNotFound)
	}
	return c, err
}

func (s *service) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, makeErr(ErrBadInput)
	}
	// Name match is case-sensitive, backed by the unique constraint.
	if _, err := s.r.ByName(ctx, name); err == nil {
		return nil, makeErr(ErrNameTaken)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return s.r.Create(ctx, name)
}

func (s *service) Rename(ctx context.Context, id int64, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, makeErr(ErrBadInput)
	}
	if _, err := s.r.ByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	other, err := s.r.ByName(ctx, name)
	if err == nil && other.ID != id {
		return nil, makeErr(ErrNameTaken)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return s.r.UpdateName(ctx, id, name)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.r.ByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	n, err := s.r.CountBooks(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return makeErr(ErrHasBooks)
	}
	return s.r.Delete(ctx, id)
}
