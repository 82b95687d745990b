// Package txnsvc is the transaction lifecycle manager: it issues books,
// closes loans with the rent computation, and answers the reporting
// queries over transactions.
//
// Known limitation, kept on purpose: Issue does not check whether the
// book already has an open loan, so two users can hold "the same" book
// at once. Reports treat the first open transaction in storage order as
// the current loan.
package txnsvc

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Kashyap-Pandya/book-rental-backend/model"
	"github.com/Kashyap-Pandya/book-rental-backend/repository/query"
)

type ErrCode string

const (
	ErrMalformedID     ErrCode = "MALFORMED_ID"
	ErrUserNotFound    ErrCode = "USER_NOT_FOUND"
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrTxNotFound      ErrCode = "TRANSACTION_NOT_FOUND"
	ErrInvalidBookData ErrCode = "INVALID_BOOK_DATA"
	ErrInvalidDates    ErrCode = "INVALID_DATE_RANGE"
	ErrNoTransactions  ErrCode = "NO_TRANSACTIONS"
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

// BookReport answers "who has this book and what happened to it".
// CurrentlyIssuedTo is nil when no loan is open; the API layer renders
// that as an explanatory message, never as null.
type BookReport struct {
	TotalCount        int
	CurrentlyIssuedTo *model.User
	Transactions      []model.Transaction
}

type Books interface {
	ByID(ctx context.Context, id string) (*model.Book, error)
}

type Users interface {
	ByID(ctx context.Context, id string) (*model.User, error)
}

type Transactions interface {
	Insert(ctx context.Context, bookID, userID string, issueDate time.Time) (*model.Transaction, error)
	ByIDWithBook(ctx context.Context, id string) (*model.Transaction, error)
	MarkReturned(ctx context.Context, id string, returnDate time.Time, rentAmount float64) (*model.Transaction, error)
	ListForBook(ctx context.Context, bookID string) ([]model.Transaction, error)
	ListReturnedForBook(ctx context.Context, bookID string) ([]model.Transaction, error)
	ListForUser(ctx context.Context, userID string) ([]model.Transaction, error)
	ListInRange(ctx context.Context, r query.DateRange) ([]model.Transaction, error)
}

type Service interface {
	Issue(ctx context.Context, bookID, userID string, issueDate time.Time) (*model.Transaction, error)
	Return(ctx context.Context, transactionID string, returnDate time.Time) (*model.Transaction, error)

	BookReport(ctx context.Context, bookID string) (*BookReport, error)
	RentTotal(ctx context.Context, bookID string) (float64, error)
	ForUser(ctx context.Context, userID string) ([]model.Transaction, error)
	InRange(ctx context.Context, startDate, endDate string) ([]model.Transaction, error)
}

type service struct {
	books Books
	users Users
	txs   Transactions
}

func New(books Books, users Users, txs Transactions) Service {
	return &service{books: books, users: users, txs: txs}
}

// Issue lends a book to a user. Both ids are format-checked before any
// store access; the user is resolved before the book.
func (s *service) Issue(ctx context.Context, bookID, userID string, issueDate time.Time) (*model.Transaction, error) {
	if !validID(bookID) || !validID(userID) {
		return nil, makeErr(ErrMalformedID)
	}
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, makeErr(ErrUserNotFound)
	}
	b, err := s.books.ByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrBookNotFound)
	}
	return s.txs.Insert(ctx, bookID, userID, issueDate)
}

// Return closes a loan. Calling it again recomputes rent from the
// original issue date and overwrites both fields.
func (s *service) Return(ctx context.Context, transactionID string, returnDate time.Time) (*model.Transaction, error) {
	if !validID(transactionID) {
		return nil, makeErr(ErrMalformedID)
	}
	t, err := s.txs.ByIDWithBook(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, makeErr(ErrTxNotFound)
	}

	days := daysRented(t.IssueDate, returnDate)

	b := t.Book
	if b == nil || b.RentPerDay <= 0 || math.IsNaN(b.RentPerDay) || math.IsInf(b.RentPerDay, 0) {
		return nil, makeErr(ErrInvalidBookData)
	}

	rentAmount := float64(days) * b.RentPerDay

	updated, err := s.txs.MarkReturned(ctx, transactionID, returnDate, rentAmount)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, makeErr(ErrTxNotFound)
	}
	return updated, nil
}

func (s *service) BookReport(ctx context.Context, bookID string) (*BookReport, error) {
	if !validID(bookID) {
		return nil, makeErr(ErrMalformedID)
	}
	rows, err := s.txs.ListForBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	rep := &BookReport{TotalCount: len(rows), Transactions: rows}
	for i := range rows {
		if rows[i].Open() {
			rep.CurrentlyIssuedTo = rows[i].User
			break
		}
	}
	return rep, nil
}

// RentTotal sums rent over closed loans. Zero closed loans is reported
// as ErrNoTransactions, which is not the same thing as a total of 0.
func (s *service) RentTotal(ctx context.Context, bookID string) (float64, error) {
	if !validID(bookID) {
		return 0, makeErr(ErrMalformedID)
	}
	rows, err := s.txs.ListReturnedForBook(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, makeErr(ErrNoTransactions)
	}
	var total float64
	for i := range rows {
		if rows[i].RentAmount != nil {
			total += *rows[i].RentAmount
		}
	}
	return total, nil
}

func (s *service) ForUser(ctx context.Context, userID string) ([]model.Transaction, error) {
	if !validID(userID) {
		return nil, makeErr(ErrMalformedID)
	}
	rows, err := s.txs.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, makeErr(ErrNoTransactions)
	}
	return rows, nil
}

func (s *service) InRange(ctx context.Context, startDate, endDate string) ([]model.Transaction, error) {
	r, err := query.ParseDateRange(startDate, endDate)
	if errors.Is(err, query.ErrInvalidRange) {
		return nil, makeErr(ErrInvalidDates)
	}
	if err != nil {
		return nil, err
	}
	rows, err := s.txs.ListInRange(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, makeErr(ErrNoTransactions)
	}
	return rows, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// daysRented divides the elapsed time into 24h periods and rounds up,
// so any fraction of a day is billed as a whole day. A return date
// before the issue date yields a negative or zero count; it is stored
// as computed, same as the system this one replaces.
func daysRented(issueDate, returnDate time.Time) int {
	return int(math.Ceil(returnDate.Sub(issueDate).Hours() / 24))
}
