package bookrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kashyap-Pandya/book-rental-backend/model"
	"github.com/Kashyap-Pandya/book-rental-backend/repository/query"
	"github.com/Kashyap-Pandya/book-rental-backend/util/database"
)

// ErrDuplicateName maps the unique index on lower(name).
var ErrDuplicateName = errors.New("book name already exists")

type Repo interface {
	Create(ctx context.Context, name, category string, rentPerDay float64) (*model.Book, error)
	ByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context, f query.BookFilter) ([]model.Book, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, name, category string, rentPerDay float64) (*model.Book, error) {
	b := &model.Book{Name: name, Category: category, RentPerDay: rentPerDay}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO books(name, category, rent_per_day)
		VALUES ($1,$2,$3)
		RETURNING id, created_at, updated_at`,
		name, category, rentPerDay,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return b, nil
}

// ByID returns (nil, nil) when the book does not exist.
func (r *repo) ByID(ctx context.Context, id string) (*model.Book, error) {
	b := &model.Book{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, category, rent_per_day, created_at, updated_at
		FROM books
		WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Name, &b.Category, &b.RentPerDay, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) List(ctx context.Context, f query.BookFilter) ([]model.Book, error) {
	sqlStr, args, err := query.Books(f).Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Category, &b.RentPerDay, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
