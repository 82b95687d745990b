package book

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Kashyap-Pandya/book-rental-backend/repository/query"
	booksvc "github.com/Kashyap-Pandya/book-rental-backend/service/book"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/books
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"name": "required", "category": "required", "rentPerDay": "gt 0"},
		})
	}
	b, err := h.Svc.Create(c.Request().Context(), req.Name, req.Category, req.RentPerDay)
	if err != nil {
		switch booksvc.Code(err) {
		case booksvc.ErrDuplicateName:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "A book with this name already exists."})
		case booksvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		default:
			h.Log.Error("book create error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, b)
}

// GET /api/books
func (h *Controller) List(c echo.Context) error {
	return h.list(c, query.BookFilter{}, "No books found, create a book.")
}

// GET /api/books/search?term=
func (h *Controller) Search(c echo.Context) error {
	term := c.QueryParam("term")
	if term == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "term is required"})
	}
	return h.list(c, query.BookFilter{Term: term}, "No books by the search name")
}

// GET /api/books/rent-range?min=&max=
func (h *Controller) RentRange(c echo.Context) error {
	min, err := parseRent(c.QueryParam("min"))
	if err != nil || min == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "min and max must be numbers"})
	}
	max, err := parseRent(c.QueryParam("max"))
	if err != nil || max == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "min and max must be numbers"})
	}
	f := query.BookFilter{MinRent: min, MaxRent: max}
	return h.list(c, f, "No books found in the specified rent range.")
}

// GET /api/books/multi-search?category=&term=&minRent=&maxRent=
// Every parameter is optional; provided ones are ANDed together.
func (h *Controller) MultiSearch(c echo.Context) error {
	minRent, err := parseRent(c.QueryParam("minRent"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "minRent must be a number"})
	}
	maxRent, err := parseRent(c.QueryParam("maxRent"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "maxRent must be a number"})
	}
	f := query.BookFilter{
		Term:     c.QueryParam("term"),
		Category: c.QueryParam("category"),
		MinRent:  minRent,
		MaxRent:  maxRent,
	}
	return h.list(c, f, "No books found with the specified criteria.")
}

func (h *Controller) list(c echo.Context, f query.BookFilter, emptyMsg string) error {
	rows, err := h.Svc.List(c.Request().Context(), f)
	if err != nil {
		if booksvc.Code(err) == booksvc.ErrNoBooks {
			return c.JSON(http.StatusNotFound, echo.Map{"message": emptyMsg})
		}
		h.Log.Error("book list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}

func parseRent(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
