package http

import (
	"errors"
	"log/slog"
	"net/http"

	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps an application error to its HTTP status.
func StatusFor(err error) int {
	switch errs.Kind(err) {
	case errs.ErrValueIsRequired, errs.ErrValueIsInvalid, errs.ErrValueIsOutOfRange:
		return http.StatusBadRequest
	case errs.ErrUnauthenticated:
		return http.StatusUnauthorized
	case errs.ErrForbidden:
		return http.StatusForbidden
	case errs.ErrObjectNotFound:
		return http.StatusNotFound
	case errs.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler returns an echo.HTTPErrorHandler that renders errs
// classifications as JSON. Unclassified errors are logged and hidden behind a
// generic message.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := http.StatusText(he.Code)
			if m, ok := he.Message.(string); ok {
				msg = m
			}
			writeError(c, he.Code, msg)
			return
		}

		code := StatusFor(err)
		msg := err.Error()
		if code == http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "Request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
			msg = "internal server error"
		}
		writeError(c, code, msg)
	}
}

func writeError(c echo.Context, code int, msg string) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, Error{Code: code, Message: msg})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
