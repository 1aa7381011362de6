package middleware

import (
	"net/http"
	"strings"

	"github.com/DashCode47/espebackend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// RequireRole gates a route to users holding one of the allowed roles.
// The role lives in the database, not the token, so a fresh lookup happens
// on every request.
func RequireRole(userRepo repositories.UserRepository, allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetUserClaims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, "User not found")
			}

			for _, role := range allowedRoles {
				if user.Role == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden,
				"Access denied. Required role: "+strings.Join(allowedRoles, " or "))
		}
	}
}
