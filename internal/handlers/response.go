package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/DashCode47/espebackend/internal/middleware"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// respondSuccess sends the uniform success envelope
func respondSuccess(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, echo.Map{"status": "success", "data": data})
}

// respondSuccessMessage sends the success envelope with a message alongside data
func respondSuccessMessage(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, echo.Map{"status": "success", "message": message, "data": data})
}

// getUserID returns the authenticated user's ID, or "" when unauthenticated
func getUserID(c echo.Context) string {
	claims := middleware.GetUserClaims(c)
	if claims == nil {
		return ""
	}
	return claims.UserID
}

// pagination reads page/limit query params with defaults
func pagination(c echo.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = defaultLimit
	}
	return page, limit
}

// paginationMeta builds the pagination block of list responses
func paginationMeta(page, limit int, total int64) echo.Map {
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return echo.Map{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": pages,
	}
}

// notFoundOr maps gorm's record-not-found onto a 404 and everything else
// onto a 500, for the common lookup-then-act handler shape.
func notFoundOr(err error, resource string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, resource+" not found")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// NewHTTPErrorHandler returns the centralized error handler producing the
// error envelope. Unexpected errors are logged verbosely and surfaced as a
// generic 500; debug detail is included only in development.
func NewHTTPErrorHandler(isDevelopment bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if he, ok := err.(*echo.HTTPError); ok {
			message := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				message = m
			}
			_ = c.JSON(he.Code, echo.Map{"status": "error", "message": message})
			return
		}

		log.Printf("unhandled error: %v (method=%s url=%s)",
			err, c.Request().Method, c.Request().URL.String())

		body := echo.Map{"status": "error", "message": "Internal server error"}
		if isDevelopment {
			body["error"] = err.Error()
		}
		_ = c.JSON(http.StatusInternalServerError, body)
	}
}
