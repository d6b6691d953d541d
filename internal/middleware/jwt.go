// Package middleware contains reusable HTTP middleware: the bearer token
// gate for administrative routes, the Redis response cache for public
// catalog reads, and the rate limiter for public submissions.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the admin identity into the request context under "admin_id"
// (uint64) and "username" (string). Every failure mode — missing header,
// malformed token, wrong algorithm, bad signature, expired — answers with
// the same 401 body so callers learn nothing about why the credential was
// rejected. Any valid credential grants full administrative capability;
// there are no roles.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication failed"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication failed"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication failed"})
			}

			// JWT numbers decode as float64.
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication failed"})
			}
			c.Set("admin_id", uint64(sub))
			if name, ok := claims["username"].(string); ok {
				c.Set("username", name)
			}
			return next(c)
		}
	}
}
