package transaction

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	txnsvc "github.com/Kashyap-Pandya/book-rental-backend/service/transaction"
	"github.com/Kashyap-Pandya/book-rental-backend/util/dates"
)

// notIssuedMsg is part of the API contract: clients distinguish "no
// loan in progress" from a missing field by this exact string.
const notIssuedMsg = "Currently, book isn't issued to anyone."

type Controller struct {
	Svc txnsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/transactions/issue
func (h *Controller) Issue(c echo.Context) error {
	var req IssueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	issueDate, err := dates.Parse(req.IssueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid issue date format"})
	}

	tx, err := h.Svc.Issue(c.Request().Context(), req.BookID, req.UserID, issueDate)
	if err != nil {
		switch txnsvc.Code(err) {
		case txnsvc.ErrMalformedID:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid book or user ID format"})
		case txnsvc.ErrUserNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		case txnsvc.ErrBookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Book not found"})
		default:
			h.Log.Error("issue error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, tx)
}

// POST /api/transactions/return
func (h *Controller) Return(c echo.Context) error {
	var req ReturnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}
	returnDate, err := dates.Parse(req.ReturnDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid return date format"})
	}

	tx, err := h.Svc.Return(c.Request().Context(), req.TransactionID, returnDate)
	if err != nil {
		switch txnsvc.Code(err) {
		case txnsvc.ErrMalformedID:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid transaction ID format"})
		case txnsvc.ErrTxNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Transaction not found"})
		case txnsvc.ErrInvalidBookData:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid book data"})
		default:
			h.Log.Error("return error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, tx)
}

// GET /api/transactions/book/:bookId
func (h *Controller) BookTransactions(c echo.Context) error {
	rep, err := h.Svc.BookReport(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		if txnsvc.Code(err) == txnsvc.ErrMalformedID {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid book ID format"})
		}
		h.Log.Error("book transactions error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}

	var currentlyIssued any = notIssuedMsg
	if rep.CurrentlyIssuedTo != nil {
		currentlyIssued = rep.CurrentlyIssuedTo
	}
	return c.JSON(http.StatusOK, echo.Map{
		"totalCount":      rep.TotalCount,
		"currentlyIssued": currentlyIssued,
		"transactions":    rep.Transactions,
	})
}

// GET /api/transactions/book/:bookId/rent-total
func (h *Controller) RentTotal(c echo.Context) error {
	total, err := h.Svc.RentTotal(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		switch txnsvc.Code(err) {
		case txnsvc.ErrMalformedID:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid book ID format"})
		case txnsvc.ErrNoTransactions:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No rent transactions found for this book"})
		default:
			h.Log.Error("rent total error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"totalRent": total})
}

// GET /api/transactions/user/:userId
func (h *Controller) UserTransactions(c echo.Context) error {
	rows, err := h.Svc.ForUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		switch txnsvc.Code(err) {
		case txnsvc.ErrMalformedID:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid user ID format"})
		case txnsvc.ErrNoTransactions:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No transactions found for this user"})
		default:
			h.Log.Error("user transactions error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /api/transactions/date-range?startDate=&endDate=
func (h *Controller) DateRange(c echo.Context) error {
	rows, err := h.Svc.InRange(c.Request().Context(), c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		switch txnsvc.Code(err) {
		case txnsvc.ErrInvalidDates:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date format"})
		case txnsvc.ErrNoTransactions:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No transactions found for the specified date range"})
		default:
			h.Log.Error("date range error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, rows)
}
