package txrepo

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/Kashyap-Pandya/book-rental-backend/model"
	"github.com/Kashyap-Pandya/book-rental-backend/repository/query"
	"github.com/Kashyap-Pandya/book-rental-backend/util/database"
)

type Repo interface {
	Insert(ctx context.Context, bookID, userID string, issueDate time.Time) (*model.Transaction, error)

	// ByIDWithBook loads a transaction with its book resolved.
	// Returns (nil, nil) when the transaction does not exist.
	ByIDWithBook(ctx context.Context, id string) (*model.Transaction, error)

	// MarkReturned writes return_date and rent_amount in one UPDATE.
	MarkReturned(ctx context.Context, id string, returnDate time.Time, rentAmount float64) (*model.Transaction, error)

	ListForBook(ctx context.Context, bookID string) ([]model.Transaction, error)         // users resolved
	ListReturnedForBook(ctx context.Context, bookID string) ([]model.Transaction, error) // closed loans only
	ListForUser(ctx context.Context, userID string) ([]model.Transaction, error)         // books resolved
	ListInRange(ctx context.Context, r query.DateRange) ([]model.Transaction, error)     // books and users resolved
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const txCols = `t.id, t.book_id, t.user_id, t.issue_date, t.return_date, t.rent_amount, t.created_at, t.updated_at`

func (r *repo) Insert(ctx context.Context, bookID, userID string, issueDate time.Time) (*model.Transaction, error) {
	t := &model.Transaction{BookID: bookID, UserID: userID, IssueDate: issueDate}
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO transactions(book_id, user_id, issue_date)
		VALUES ($1,$2,$3)
		RETURNING id, issue_date, created_at, updated_at`,
		bookID, userID, issueDate,
	).Scan(&t.ID, &t.IssueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) ByIDWithBook(ctx context.Context, id string) (*model.Transaction, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT `+txCols+`,
		       b.id, b.name, b.category, b.rent_per_day, b.created_at, b.updated_at
		FROM transactions t
		LEFT JOIN books b ON b.id = t.book_id
		WHERE t.id = $1`,
		id,
	)
	t := &model.Transaction{}
	var b bookCols
	err := row.Scan(
		&t.ID, &t.BookID, &t.UserID, &t.IssueDate, &t.ReturnDate, &t.RentAmount, &t.CreatedAt, &t.UpdatedAt,
		&b.id, &b.name, &b.category, &b.rentPerDay, &b.createdAt, &b.updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Book = b.book()
	return t, nil
}

func (r *repo) MarkReturned(ctx context.Context, id string, returnDate time.Time, rentAmount float64) (*model.Transaction, error) {
	t := &model.Transaction{}
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE transactions
		SET return_date = $2, rent_amount = $3, updated_at = now()
		WHERE id = $1
		RETURNING id, book_id, user_id, issue_date, return_date, rent_amount, created_at, updated_at`,
		id, returnDate, rentAmount,
	).Scan(&t.ID, &t.BookID, &t.UserID, &t.IssueDate, &t.ReturnDate, &t.RentAmount, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) ListForBook(ctx context.Context, bookID string) ([]model.Transaction, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+txCols+`,
		       u.id, u.name, u.email, u.created_at, u.updated_at
		FROM transactions t
		LEFT JOIN users u ON u.id = t.user_id
		WHERE t.book_id = $1
		ORDER BY t.created_at, t.id`,
		bookID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var u userCols
		if err := rows.Scan(
			&t.ID, &t.BookID, &t.UserID, &t.IssueDate, &t.ReturnDate, &t.RentAmount, &t.CreatedAt, &t.UpdatedAt,
			&u.id, &u.name, &u.email, &u.createdAt, &u.updatedAt,
		); err != nil {
			return nil, err
		}
		t.User = u.user()
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) ListReturnedForBook(ctx context.Context, bookID string) ([]model.Transaction, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+txCols+`
		FROM transactions t
		WHERE t.book_id = $1 AND t.return_date IS NOT NULL
		ORDER BY t.created_at, t.id`,
		bookID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(
			&t.ID, &t.BookID, &t.UserID, &t.IssueDate, &t.ReturnDate, &t.RentAmount, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) ListForUser(ctx context.Context, userID string) ([]model.Transaction, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+txCols+`,
		       b.id, b.name, b.category, b.rent_per_day, b.created_at, b.updated_at
		FROM transactions t
		LEFT JOIN books b ON b.id = t.book_id
		WHERE t.user_id = $1
		ORDER BY t.created_at, t.id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var b bookCols
		if err := rows.Scan(
			&t.ID, &t.BookID, &t.UserID, &t.IssueDate, &t.ReturnDate, &t.RentAmount, &t.CreatedAt, &t.UpdatedAt,
			&b.id, &b.name, &b.category, &b.rentPerDay, &b.createdAt, &b.updatedAt,
		); err != nil {
			return nil, err
		}
		t.Book = b.book()
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) ListInRange(ctx context.Context, dr query.DateRange) ([]model.Transaction, error) {
	ds := query.Dialect().
		From(goqu.T("transactions").As("t")).
		LeftJoin(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("t.book_id")))).
		LeftJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("t.user_id")))).
		Select(
			goqu.I("t.id"), goqu.I("t.book_id"), goqu.I("t.user_id"),
			goqu.I("t.issue_date"), goqu.I("t.return_date"), goqu.I("t.rent_amount"),
			goqu.I("t.created_at"), goqu.I("t.updated_at"),
			goqu.I("b.id"), goqu.I("b.name"), goqu.I("b.category"),
			goqu.I("b.rent_per_day"), goqu.I("b.created_at"), goqu.I("b.updated_at"),
			goqu.I("u.id"), goqu.I("u.name"), goqu.I("u.email"),
			goqu.I("u.created_at"), goqu.I("u.updated_at"),
		).
		Where(dr.Expressions(goqu.I("t.issue_date"))...).
		Order(goqu.I("t.issue_date").Asc(), goqu.I("t.id").Asc())

	sqlStr, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var b bookCols
		var u userCols
		if err := rows.Scan(
			&t.ID, &t.BookID, &t.UserID, &t.IssueDate, &t.ReturnDate, &t.RentAmount, &t.CreatedAt, &t.UpdatedAt,
			&b.id, &b.name, &b.category, &b.rentPerDay, &b.createdAt, &b.updatedAt,
			&u.id, &u.name, &u.email, &u.createdAt, &u.updatedAt,
		); err != nil {
			return nil, err
		}
		t.Book = b.book()
		t.User = u.user()
		out = append(out, t)
	}
	return out, rows.Err()
}

// Nullable scan targets for LEFT JOINed rows.

type bookCols struct {
	id, name, category *string
	rentPerDay         *float64
	createdAt          *time.Time
	updatedAt          *time.Time
}

func (b bookCols) book() *model.Book {
	if b.id == nil {
		return nil
	}
	return &model.Book{
		ID:         *b.id,
		Name:       *b.name,
		Category:   *b.category,
		RentPerDay: *b.rentPerDay,
		CreatedAt:  *b.createdAt,
		UpdatedAt:  *b.updatedAt,
	}
}

type userCols struct {
	id, name, email *string
	createdAt       *time.Time
	updatedAt       *time.Time
}

func (u userCols) user() *model.User {
	if u.id == nil {
		return nil
	}
	return &model.User{
		ID:        *u.id,
		Name:      *u.name,
		Email:     *u.email,
		CreatedAt: *u.createdAt,
		UpdatedAt: *u.updatedAt,
	}
}
