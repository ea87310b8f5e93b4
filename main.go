// Package main books API.
//
// @title           Library Books API
// @version         1.0
// @description     library books service (books, categories, borrowings).
// @BasePath        /api
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Touati-Fadwa/Micro-books/app/echoServer"
	bookctrl "github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/book"
	borrowctrl "github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/borrowing"
	categoryctrl "github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/category"
	"github.com/Touati-Fadwa/Micro-books/app/echoServer/validation"
	"github.com/Touati-Fadwa/Micro-books/config"
	bookrepo "github.com/Touati-Fadwa/Micro-books/repository/book"
	borrowrepo "github.com/Touati-Fadwa/Micro-books/repository/borrowing"
	categoryrepo "github.com/Touati-Fadwa/Micro-books/repository/category"
	booksvc "github.com/Touati-Fadwa/Micro-books/service/book"
	borrowsvc "github.com/Touati-Fadwa/Micro-books/service/borrowing"
	categorysvc "github.com/Touati-Fadwa/Micro-books/service/category"
	"github.com/Touati-Fadwa/Micro-books/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Error("db migrate failed", "err", err)
		os.Exit(1)
	}
	if cfg.SeedDefaults {
		if err := database.SeedDefaultCategories(ctx, db); err != nil {
			log.Error("seed categories failed", "err", err)
			os.Exit(1)
		}
	}

	// repos
	br := bookrepo.New(db)
	cr := categoryrepo.New(db)
	lr := borrowrepo.New(db)

	// services
	bs := booksvc.New(br, cr)
	cs := categorysvc.New(cr)
	ls := borrowsvc.New(lr)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	categoryC := &categoryctrl.Controller{Svc: cs, V: v, Log: log}
	borrowC := &borrowctrl.Controller{Svc: ls, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:      bookC,
		Category:  categoryC,
		Borrowing: borrowC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
