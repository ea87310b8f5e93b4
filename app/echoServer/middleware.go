// app/echoServer/middleware.go
package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Touati-Fadwa/Micro-books/app/echoServer/jwtx"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(middleware.CORS())

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
			)
			return err
		}
	}
}

// RequireRole is the capability check for privileged endpoints: one
// policy predicate over the caller's identity, applied per route instead
// of inline conditionals in every handler.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := jwtx.FromContext(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			if id.Role != role {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
			}
			return next(c)
		}
	}
}
