package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

var statusByError = []struct {
	err    error
	status int
}{
	{services.ErrNotFound, http.StatusNotFound},
	{services.ErrDuplicateLike, http.StatusConflict},
	{services.ErrConflict, http.StatusConflict},
	{services.ErrSelfFollow, http.StatusBadRequest},
	{services.ErrSelfNotify, http.StatusBadRequest},
	{services.ErrNotFollowing, http.StatusBadRequest},
	{services.ErrValidation, http.StatusBadRequest},
	{services.ErrPermission, http.StatusForbidden},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrUnavailable, http.StatusServiceUnavailable},
}

func errorCode(status int, err error) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs), errors.Is(err, services.ErrValidation):
		return "VALIDATION_ERROR"
	}

	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	case http.StatusServiceUnavailable:
		return "UNAVAILABLE"
	}
	return "INTERNAL_ERROR"
}

// resolve maps err to a status and client-facing message
func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status, err.Error()
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// StatusFor reports the status NewErrorHandler writes for err
func StatusFor(err error) int {
	status, _ := resolve(err)
	return status
}

// NewErrorHandler returns the echo error handler. Domain errors become their
// mapped status; anything unrecognised is logged and reported as a 500.
func NewErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := resolve(err)
		traceID := uuid.New().String()[:8]

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("trace_id", traceID),
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		body := ErrorResponse{Code: errorCode(status, err), Message: message, TraceID: traceID}
		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.Warn("write error response failed", zap.Error(werr))
		}
	}
}
