package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/DashCode47/espebackend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTAuthMiddleware checks for a valid JWT and extracts user claims.
func JWTAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>", but tolerate a bare token the way
			// the mobile client sometimes sends it.
			var tokenString string
			parts := strings.Split(authHeader, " ")
			switch {
			case len(parts) == 2 && strings.ToLower(parts[0]) == "bearer":
				tokenString = parts[1]
			case len(parts) == 1:
				tokenString = parts[0]
			default:
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			jwtSecret := os.Getenv("JWT_SECRET")
			if jwtSecret == "" {
				jwtSecret = "default-secret-key" // Must match the secret used for signing
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			// Store user claims in context
			c.Set("user", claims)

			return next(c)
		}
	}
}

// GetUserClaims returns the authenticated user's claims, or nil when the
// route is not behind JWTAuthMiddleware.
func GetUserClaims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}
