package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			// structured payloads (e.g. validation detail) pass through
			_ = c.JSON(code, he.Message)
			return
		}
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}
