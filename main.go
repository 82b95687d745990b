// Package main library rental API.
//
// Books, users, and rental transactions with day-based rent
// computation. See GET /api/routes for the endpoint listing.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Kashyap-Pandya/book-rental-backend/app/echoServer"
	bookctrl "github.com/Kashyap-Pandya/book-rental-backend/app/echoServer/controller/book"
	txctrl "github.com/Kashyap-Pandya/book-rental-backend/app/echoServer/controller/transaction"
	userctrl "github.com/Kashyap-Pandya/book-rental-backend/app/echoServer/controller/user"
	"github.com/Kashyap-Pandya/book-rental-backend/app/echoServer/validation"
	"github.com/Kashyap-Pandya/book-rental-backend/config"
	bookrepo "github.com/Kashyap-Pandya/book-rental-backend/repository/book"
	txrepo "github.com/Kashyap-Pandya/book-rental-backend/repository/transaction"
	userrepo "github.com/Kashyap-Pandya/book-rental-backend/repository/user"
	booksvc "github.com/Kashyap-Pandya/book-rental-backend/service/book"
	txnsvc "github.com/Kashyap-Pandya/book-rental-backend/service/transaction"
	usersvc "github.com/Kashyap-Pandya/book-rental-backend/service/user"
	"github.com/Kashyap-Pandya/book-rental-backend/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	// repos
	br := bookrepo.New(db)
	ur := userrepo.New(db)
	tr := txrepo.New(db)

	// services
	bs := booksvc.New(br)
	us := usersvc.New(ur)
	ts := txnsvc.New(br, ur, tr)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	txC := &txctrl.Controller{Svc: ts, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	echoServer.Register(e, echoServer.C{
		Book:    bookC,
		User:    userC,
		Tx:      txC,
		BaseURL: cfg.BaseURL,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
