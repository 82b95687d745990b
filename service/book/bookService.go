package booksvc

import (
	"context"
	"errors"
	"strings"

	"github.com/Kashyap-Pandya/book-rental-backend/model"
	bookrepo "github.com/Kashyap-Pandya/book-rental-backend/repository/book"
	"github.com/Kashyap-Pandya/book-rental-backend/repository/query"
)

// errors used by controllers

type ErrCode string

const (
	ErrBadInput      ErrCode = "BAD_INPUT"
	ErrDuplicateName ErrCode = "DUPLICATE_NAME"
	ErrNoBooks       ErrCode = "NO_BOOKS"
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

type Book = model.Book

type Repo interface {
	Create(ctx context.Context, name, category string, rentPerDay float64) (*model.Book, error)
	ByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context, f query.BookFilter) ([]model.Book, error)
}

type Service interface {
	Create(ctx context.Context, name, category string, rentPerDay float64) (*model.Book, error)

	// List applies the optional filter criteria. An empty result is
	// reported as ErrNoBooks so the API can answer with guidance text
	// instead of a bare empty array.
	List(ctx context.Context, f query.BookFilter) ([]model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, category string, rentPerDay float64) (*model.Book, error) {
	name = strings.TrimSpace(name)
	category = strings.TrimSpace(category)
	if name == "" || category == "" || rentPerDay <= 0 {
		return nil, makeErr(ErrBadInput)
	}
	b, err := s.r.Create(ctx, name, category, rentPerDay)
	if errors.Is(err, bookrepo.ErrDuplicateName) {
		return nil, makeErr(ErrDuplicateName)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context, f query.BookFilter) ([]model.Book, error) {
	out, err := s.r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, makeErr(ErrNoBooks)
	}
	return out, nil
}
