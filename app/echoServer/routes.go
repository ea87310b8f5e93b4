package echoServer

import (
	"net/http"

	"github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/book"
	"github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/borrowing"
	"github.com/Touati-Fadwa/Micro-books/app/echoServer/controller/category"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Book      *book.Controller
	Category  *category.Controller
	Borrowing *borrowing.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	e.GET("/api/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{
			"status":  "OK",
			"message": "Books service is running",
		})
	})

	// Everything else under /api carries a gateway-issued bearer token.
	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
		ErrorHandler: func(ctx echo.Context, err error) error {
			// missing and malformed tokens are both a 401 here
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		},
	}))

	admin := RequireRole("admin")

	// Books
	api.GET("/books", c.Book.List)
	api.GET("/books/:id", c.Book.Detail)
	api.POST("/books", c.Book.Create, admin)
	api.PUT("/books/:id", c.Book.Update, admin)
	api.DELETE("/books/:id", c.Book.Delete, admin)

	// Categories
	api.GET("/categories", c.Category.List)
	api.GET("/categories/:id", c.Category.Detail)
	api.POST("/categories", c.Category.Create, admin)
	api.PUT("/categories/:id", c.Category.Update, admin)
	api.DELETE("/categories/:id", c.Category.Delete, admin)

	// Borrowings
	api.GET("/borrowings", c.Borrowing.ListAll, admin)
	api.GET("/borrowings/student", c.Borrowing.ListMine)
	api.POST("/borrowings", c.Borrowing.Create, admin)
	api.PUT("/borrowings/:id/return", c.Borrowing.Return, admin)
	api.DELETE("/borrowings/:id", c.Borrowing.Delete, admin)

	e.RouteNotFound("/*", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusNotFound, echo.Map{
			"status":  "error",
			"message": "Route not found",
		})
	})
}
