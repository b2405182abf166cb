package middleware

import (
	"net/http"
	"strings"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
)

const (
	// UserIDKey holds the authenticated user's id (uint) in the echo context
	UserIDKey = "user_id"
	// ClaimsKey holds the parsed *models.JwtCustomClaims
	ClaimsKey = "user"
)

// TokenParser validates a bearer token and returns its claims
type TokenParser interface {
	ParseToken(token string) (*models.JwtCustomClaims, error)
}

// JWTAuthMiddleware checks for a valid JWT and extracts user claims.
func JWTAuthMiddleware(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := parser.ParseToken(parts[1])
			if err != nil || claims.UserID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)

			return next(c)
		}
	}
}
