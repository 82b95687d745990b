package usersvc

import (
	"context"
	"errors"
	"strings"

	"github.com/Kashyap-Pandya/book-rental-backend/model"
	userrepo "github.com/Kashyap-Pandya/book-rental-backend/repository/user"
)

type ErrCode string

const (
	ErrBadInput       ErrCode = "BAD_INPUT"
	ErrDuplicateEmail ErrCode = "DUPLICATE_EMAIL"
	ErrNoUsers        ErrCode = "NO_USERS"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type Service interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, email string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, makeErr(ErrBadInput)
	}
	u, err := s.r.Create(ctx, name, email)
	if errors.Is(err, userrepo.ErrDuplicateEmail) {
		return nil, makeErr(ErrDuplicateEmail)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	out, err := s.r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, makeErr(ErrNoUsers)
	}
	return out, nil
}
