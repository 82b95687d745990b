package echoServer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kashyap-Pandya/book-rental-backend/app/echoServer/controller/book"
	"github.com/Kashyap-Pandya/book-rental-backend/app/echoServer/controller/transaction"
	"github.com/Kashyap-Pandya/book-rental-backend/app/echoServer/controller/user"
)

type C struct {
	Book *book.Controller
	User *user.Controller
	Tx   *transaction.Controller

	BaseURL string
}

func Register(e *echo.Echo, c C) {
	api := e.Group("/api")

	// Books
	api.POST("/books", c.Book.Create)
	api.GET("/books", c.Book.List)
	api.GET("/books/search", c.Book.Search)
	api.GET("/books/rent-range", c.Book.RentRange)
	api.GET("/books/multi-search", c.Book.MultiSearch)

	// Users
	api.POST("/users", c.User.Create)
	api.GET("/users", c.User.List)

	// Transactions
	api.POST("/transactions/issue", c.Tx.Issue)
	api.POST("/transactions/return", c.Tx.Return)
	api.GET("/transactions/book/:bookId", c.Tx.BookTransactions)
	api.GET("/transactions/book/:bookId/rent-total", c.Tx.RentTotal)
	api.GET("/transactions/user/:userId", c.Tx.UserTransactions)
	api.GET("/transactions/date-range", c.Tx.DateRange)

	api.GET("/routes", routesIndex(c.BaseURL))
}

// routesIndex is a self-describing listing of the API, kept so clients
// can discover endpoints without external docs.
func routesIndex(baseURL string) echo.HandlerFunc {
	routes := []echo.Map{
		{"method": "POST", "path": "/api/books", "description": "Create a new book",
			"example": baseURL + "/api/books"},
		{"method": "GET", "path": "/api/books", "description": "Get all books",
			"example": baseURL + "/api/books"},
		{"method": "GET", "path": "/api/books/search", "description": "Search books by name (case-insensitive)",
			"example": baseURL + "/api/books/search?term=Harry"},
		{"method": "GET", "path": "/api/books/rent-range", "description": "Get books within a rent-per-day range",
			"example": baseURL + "/api/books/rent-range?min=5&max=9"},
		{"method": "GET", "path": "/api/books/multi-search", "description": "Filter books by any combination of category, term, minRent, maxRent",
			"example": baseURL + "/api/books/multi-search?category=Mystery&term=sherlock&minRent=5&maxRent=9"},
		{"method": "POST", "path": "/api/users", "description": "Create a new user",
			"example": baseURL + "/api/users"},
		{"method": "GET", "path": "/api/users", "description": "Get all users",
			"example": baseURL + "/api/users"},
		{"method": "POST", "path": "/api/transactions/issue", "description": "Issue a book to a user",
			"example": baseURL + "/api/transactions/issue"},
		{"method": "POST", "path": "/api/transactions/return", "description": "Return a book and compute rent",
			"example": baseURL + "/api/transactions/return"},
		{"method": "GET", "path": "/api/transactions/book/:bookId", "description": "Transaction history and current holder of a book",
			"example": baseURL + "/api/transactions/book/{bookId}"},
		{"method": "GET", "path": "/api/transactions/book/:bookId/rent-total", "description": "Total rent collected for a book",
			"example": baseURL + "/api/transactions/book/{bookId}/rent-total"},
		{"method": "GET", "path": "/api/transactions/user/:userId", "description": "Transactions of a user",
			"example": baseURL + "/api/transactions/user/{userId}"},
		{"method": "GET", "path": "/api/transactions/date-range", "description": "Transactions issued within a date range",
			"example": baseURL + "/api/transactions/date-range?startDate=2024-01-01&endDate=2024-01-31"},
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "API Routes",
			"routes":  routes,
		})
	}
}
