package txnsvc_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Kashyap-Pandya/book-rental-backend/model"
	"github.com/Kashyap-Pandya/book-rental-backend/repository/query"
	txnsvc "github.com/Kashyap-Pandya/book-rental-backend/service/transaction"
)

type booksMock struct {
	byIDFn func(ctx context.Context, id string) (*model.Book, error)
}

func (m *booksMock) ByID(ctx context.Context, id string) (*model.Book, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

type usersMock struct {
	byIDFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *usersMock) ByID(ctx context.Context, id string) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

type txsMock struct {
	insertFn       func(ctx context.Context, bookID, userID string, issueDate time.Time) (*model.Transaction, error)
	byIDWithBookFn func(ctx context.Context, id string) (*model.Transaction, error)
	markReturnedFn func(ctx context.Context, id string, returnDate time.Time, rentAmount float64) (*model.Transaction, error)
	listForBookFn  func(ctx context.Context, bookID string) ([]model.Transaction, error)
	listReturnedFn func(ctx context.Context, bookID string) ([]model.Transaction, error)
	listForUserFn  func(ctx context.Context, userID string) ([]model.Transaction, error)
	listInRangeFn  func(ctx context.Context, r query.DateRange) ([]model.Transaction, error)
}

func (m *txsMock) Insert(ctx context.Context, bookID, userID string, issueDate time.Time) (*model.Transaction, error) {
	return m.insertFn(ctx, bookID, userID, issueDate)
}
func (m *txsMock) ByIDWithBook(ctx context.Context, id string) (*model.Transaction, error) {
	return m.byIDWithBookFn(ctx, id)
}
func (m *txsMock) MarkReturned(ctx context.Context, id string, returnDate time.Time, rentAmount float64) (*model.Transaction, error) {
	return m.markReturnedFn(ctx, id, returnDate, rentAmount)
}
func (m *txsMock) ListForBook(ctx context.Context, bookID string) ([]model.Transaction, error) {
	return m.listForBookFn(ctx, bookID)
}
func (m *txsMock) ListReturnedForBook(ctx context.Context, bookID string) ([]model.Transaction, error) {
	return m.listReturnedFn(ctx, bookID)
}
func (m *txsMock) ListForUser(ctx context.Context, userID string) ([]model.Transaction, error) {
	return m.listForUserFn(ctx, userID)
}
func (m *txsMock) ListInRange(ctx context.Context, r query.DateRange) ([]model.Transaction, error) {
	return m.listInRangeFn(ctx, r)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// --- Issue ---

func TestIssue_MalformedIDsNeverReachStore(t *testing.T) {
	ctx := context.Background()
	storeTouched := false
	books := &booksMock{byIDFn: func(context.Context, string) (*model.Book, error) {
		storeTouched = true
		return nil, nil
	}}
	users := &usersMock{byIDFn: func(context.Context, string) (*model.User, error) {
		storeTouched = true
		return nil, nil
	}}
	svc := txnsvc.New(books, users, &txsMock{})

	_, err := svc.Issue(ctx, "not-an-id", "not-an-id", day(2024, 1, 1))
	require.Error(t, err)
	require.Equal(t, txnsvc.ErrMalformedID, txnsvc.Code(err))
	require.False(t, storeTouched)
}

func TestIssue_UserCheckedBeforeBook(t *testing.T) {
	ctx := context.Background()
	bookLookedUp := false
	books := &booksMock{byIDFn: func(context.Context, string) (*model.Book, error) {
		bookLookedUp = true
		return nil, nil
	}}
	users := &usersMock{byIDFn: func(context.Context, string) (*model.User, error) {
		return nil, nil
	}}
	svc := txnsvc.New(books, users, &txsMock{})

	_, err := svc.Issue(ctx, uuid.NewString(), uuid.NewString(), day(2024, 1, 1))
	require.Equal(t, txnsvc.ErrUserNotFound, txnsvc.Code(err))
	require.False(t, bookLookedUp, "book must not be resolved before the user check fails")
}

func TestIssue_BookNotFound(t *testing.T) {
	ctx := context.Background()
	users := &usersMock{byIDFn: func(_ context.Context, id string) (*model.User, error) {
		return &model.User{ID: id}, nil
	}}
	books := &booksMock{}
	svc := txnsvc.New(books, users, &txsMock{})

	_, err := svc.Issue(ctx, uuid.NewString(), uuid.NewString(), day(2024, 1, 1))
	require.Equal(t, txnsvc.ErrBookNotFound, txnsvc.Code(err))
}

func TestIssue_CreatesOpenTransaction(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.NewString()
	userID := uuid.NewString()
	issued := day(2024, 3, 1)

	users := &usersMock{byIDFn: func(_ context.Context, id string) (*model.User, error) {
		return &model.User{ID: id}, nil
	}}
	books := &booksMock{byIDFn: func(_ context.Context, id string) (*model.Book, error) {
		return &model.Book{ID: id, RentPerDay: 4}, nil
	}}
	txs := &txsMock{insertFn: func(_ context.Context, b, u string, d time.Time) (*model.Transaction, error) {
		require.Equal(t, bookID, b)
		require.Equal(t, userID, u)
		require.Equal(t, issued, d)
		return &model.Transaction{ID: uuid.NewString(), BookID: b, UserID: u, IssueDate: d}, nil
	}}
	svc := txnsvc.New(books, users, txs)

	got, err := svc.Issue(ctx, bookID, userID, issued)
	require.NoError(t, err)
	require.True(t, got.Open())
	require.Equal(t, issued, got.IssueDate)
}

// --- Return ---

// openTx returns a mock that serves one open transaction with the given
// book and echoes MarkReturned writes back.
func openTx(issueDate time.Time, book *model.Book) *txsMock {
	return &txsMock{
		byIDWithBookFn: func(_ context.Context, id string) (*model.Transaction, error) {
			return &model.Transaction{ID: id, IssueDate: issueDate, Book: book}, nil
		},
		markReturnedFn: func(_ context.Context, id string, rd time.Time, amount float64) (*model.Transaction, error) {
			return &model.Transaction{ID: id, IssueDate: issueDate, ReturnDate: &rd, RentAmount: &amount}, nil
		},
	}
}

func TestReturn_RentIsCeilDaysTimesRate(t *testing.T) {
	ctx := context.Background()
	txs := openTx(day(2024, 1, 1), &model.Book{RentPerDay: 5})
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	got, err := svc.Return(ctx, uuid.NewString(), day(2024, 1, 4))
	require.NoError(t, err)
	require.NotNil(t, got.RentAmount)
	require.Equal(t, float64(15), *got.RentAmount) // 3 whole days * 5
	require.False(t, got.Open())
}

func TestReturn_DuneScenario(t *testing.T) {
	ctx := context.Background()
	txs := openTx(day(2024, 3, 1), &model.Book{Name: "Dune", Category: "SciFi", RentPerDay: 4})
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	got, err := svc.Return(ctx, uuid.NewString(), day(2024, 3, 5))
	require.NoError(t, err)
	require.Equal(t, float64(16), *got.RentAmount)
}

func TestReturn_FractionOfADayBillsWholeDay(t *testing.T) {
	ctx := context.Background()
	txs := openTx(day(2024, 1, 1), &model.Book{RentPerDay: 5})
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	returned := time.Date(2024, 1, 4, 1, 0, 0, 0, time.UTC) // 3 days + 1 hour
	got, err := svc.Return(ctx, uuid.NewString(), returned)
	require.NoError(t, err)
	require.Equal(t, float64(20), *got.RentAmount)
}

func TestReturn_SameDateYieldsSameAmount(t *testing.T) {
	ctx := context.Background()
	txs := openTx(day(2024, 1, 1), &model.Book{RentPerDay: 5})
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)
	id := uuid.NewString()

	first, err := svc.Return(ctx, id, day(2024, 1, 4))
	require.NoError(t, err)
	second, err := svc.Return(ctx, id, day(2024, 1, 4))
	require.NoError(t, err)
	require.Equal(t, *first.RentAmount, *second.RentAmount)

	// A later return date recomputes from the original issue date.
	third, err := svc.Return(ctx, id, day(2024, 1, 6))
	require.NoError(t, err)
	require.Equal(t, float64(25), *third.RentAmount)
}

func TestReturn_BeforeIssueDateIsStoredAsComputed(t *testing.T) {
	ctx := context.Background()
	txs := openTx(day(2024, 1, 10), &model.Book{RentPerDay: 5})
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	got, err := svc.Return(ctx, uuid.NewString(), day(2024, 1, 8))
	require.NoError(t, err)
	require.Equal(t, float64(-10), *got.RentAmount)
}

func TestReturn_InvalidBookData(t *testing.T) {
	ctx := context.Background()
	for name, book := range map[string]*model.Book{
		"missing book":  nil,
		"zero rate":     {RentPerDay: 0},
		"negative rate": {RentPerDay: -2},
	} {
		svc := txnsvc.New(&booksMock{}, &usersMock{}, openTx(day(2024, 1, 1), book))
		_, err := svc.Return(ctx, uuid.NewString(), day(2024, 1, 4))
		require.Equal(t, txnsvc.ErrInvalidBookData, txnsvc.Code(err), name)
	}
}

func TestReturn_NotFoundAndMalformed(t *testing.T) {
	ctx := context.Background()
	txs := &txsMock{byIDWithBookFn: func(context.Context, string) (*model.Transaction, error) {
		return nil, nil
	}}
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	_, err := svc.Return(ctx, uuid.NewString(), day(2024, 1, 4))
	require.Equal(t, txnsvc.ErrTxNotFound, txnsvc.Code(err))

	_, err = svc.Return(ctx, "junk", day(2024, 1, 4))
	require.Equal(t, txnsvc.ErrMalformedID, txnsvc.Code(err))
}

// --- Reporting ---

func TestBookReport_FirstOpenTransactionWins(t *testing.T) {
	ctx := context.Background()
	ann := &model.User{ID: uuid.NewString(), Name: "Ann"}
	bob := &model.User{ID: uuid.NewString(), Name: "Bob"}
	closedAt := day(2024, 1, 5)
	amount := 10.0

	txs := &txsMock{listForBookFn: func(context.Context, string) ([]model.Transaction, error) {
		return []model.Transaction{
			{ID: uuid.NewString(), ReturnDate: &closedAt, RentAmount: &amount, User: bob},
			{ID: uuid.NewString(), User: ann},
			{ID: uuid.NewString(), User: bob},
		}, nil
	}}
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	rep, err := svc.BookReport(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, 3, rep.TotalCount)
	require.Equal(t, ann, rep.CurrentlyIssuedTo)
}

func TestBookReport_NoOpenLoan(t *testing.T) {
	ctx := context.Background()
	txs := &txsMock{listForBookFn: func(context.Context, string) ([]model.Transaction, error) {
		return nil, nil
	}}
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	rep, err := svc.BookReport(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Zero(t, rep.TotalCount)
	require.Nil(t, rep.CurrentlyIssuedTo)
}

func TestRentTotal_EmptyIsNotZero(t *testing.T) {
	ctx := context.Background()
	txs := &txsMock{listReturnedFn: func(context.Context, string) ([]model.Transaction, error) {
		return nil, nil
	}}
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	_, err := svc.RentTotal(ctx, uuid.NewString())
	require.Equal(t, txnsvc.ErrNoTransactions, txnsvc.Code(err))
}

func TestRentTotal_MissingAmountCountsAsZero(t *testing.T) {
	ctx := context.Background()
	twelve := 12.0
	eight := 8.0
	txs := &txsMock{listReturnedFn: func(context.Context, string) ([]model.Transaction, error) {
		return []model.Transaction{
			{RentAmount: &twelve},
			{RentAmount: nil},
			{RentAmount: &eight},
		}, nil
	}}
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	total, err := svc.RentTotal(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Equal(t, float64(20), total)
}

func TestForUser_EmptyReportsNoTransactions(t *testing.T) {
	ctx := context.Background()
	txs := &txsMock{listForUserFn: func(context.Context, string) ([]model.Transaction, error) {
		return []model.Transaction{}, nil
	}}
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	_, err := svc.ForUser(ctx, uuid.NewString())
	require.Equal(t, txnsvc.ErrNoTransactions, txnsvc.Code(err))
}

func TestInRange_RejectsBadBoundsBeforeStore(t *testing.T) {
	ctx := context.Background()
	storeTouched := false
	txs := &txsMock{listInRangeFn: func(context.Context, query.DateRange) ([]model.Transaction, error) {
		storeTouched = true
		return nil, nil
	}}
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	for _, tc := range [][2]string{
		{"", "2024-01-31"},
		{"2024-01-01", ""},
		{"junk", "2024-01-31"},
	} {
		_, err := svc.InRange(ctx, tc[0], tc[1])
		require.Equal(t, txnsvc.ErrInvalidDates, txnsvc.Code(err))
	}
	require.False(t, storeTouched)
}

func TestInRange_PassesParsedWindow(t *testing.T) {
	ctx := context.Background()
	txs := &txsMock{listInRangeFn: func(_ context.Context, r query.DateRange) ([]model.Transaction, error) {
		require.Equal(t, day(2024, 1, 1), r.Start)
		require.Equal(t, day(2024, 1, 31), r.End)
		return []model.Transaction{{ID: uuid.NewString()}}, nil
	}}
	svc := txnsvc.New(&booksMock{}, &usersMock{}, txs)

	rows, err := svc.InRange(ctx, "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
