// app/echoServer/jwtx/identity.go
package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Identity is what the gateway token tells us about the caller.
type Identity struct {
	ID   int64
	Role string
}

// FromContext reads the verified token the jwt middleware stored and
// pulls out the caller's id and role. The gateway signs "id" claims;
// "sub" is accepted as a fallback.
func FromContext(c echo.Context) (Identity, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return Identity{}, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, errors.New("invalid jwt claims")
	}

	var id Identity
	if f, ok := claims["id"].(float64); ok {
		id.ID = int64(f)
	} else if f, ok := claims["sub"].(float64); ok {
		id.ID = int64(f)
	} else {
		return Identity{}, errors.New("id missing in claims")
	}
	if s, ok := claims["role"].(string); ok {
		id.Role = s
	}
	return id, nil
}
