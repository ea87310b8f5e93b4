// Package jwt issues the HS256 tokens the service accepts. In production
// tokens come from the identity gateway; this helper exists for local
// development and for exercising the auth middleware in tests.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func Issue(secret string, userID int64, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
