package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anonto42/socialfeed/backend/internal/middleware"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var firstPage = models.PaginationParams{Page: 1, PageSize: models.DefaultPageSize}

// newTestServer mounts routes under /api/v1 with userID acting as the
// authenticated caller. Zero leaves the request anonymous.
func newTestServer(userID uint, register func(g *echo.Group)) *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = NewErrorHandler(zap.NewNop())

	g := e.Group("/api/v1", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID != 0 {
				c.Set(middleware.UserIDKey, userID)
			}
			return next(c)
		}
	})
	register(g)
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
