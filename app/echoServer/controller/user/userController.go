package user

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	usersvc "github.com/Kashyap-Pandya/book-rental-backend/service/user"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/users
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  echo.Map{"name": "required", "email": "required, valid email"},
		})
	}
	u, err := h.Svc.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		switch usersvc.Code(err) {
		case usersvc.ErrDuplicateEmail:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "The email already exists."})
		case usersvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payload"})
		default:
			h.Log.Error("user create error", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, u)
}

// GET /api/users
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		if usersvc.Code(err) == usersvc.ErrNoUsers {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "No users found. Create users"})
		}
		h.Log.Error("user list error", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, rows)
}
