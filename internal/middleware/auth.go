package middleware

import (
	"net/http"
	"strings"

	"github.com/burkedavid/golf-society-booking-sub000/internal/models"
	"github.com/burkedavid/golf-society-booking-sub000/internal/repository"
	"github.com/labstack/echo/v4"
)

const memberContextKey = "member"

// Auth resolves the Bearer token to a live session and stashes the
// acting member on the request context.
func Auth(sessions repository.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimPrefix(header, "Bearer ")
			if token == "" || token == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			session, err := sessions.FindByToken(c.Request().Context(), token)
			if err != nil || session.Member == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}

			c.Set(memberContextKey, session.Member)
			return next(c)
		}
	}
}

// AdminOnly must run after Auth.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		member := CurrentMember(c)
		if member == nil || !member.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// CurrentMember returns the authenticated member, or nil outside Auth.
func CurrentMember(c echo.Context) *models.Member {
	member, _ := c.Get(memberContextKey).(*models.Member)
	return member
}
