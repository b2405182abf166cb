package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/socialfeed/backend/internal/middleware"
	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user id set by the JWT middleware
func getUserIDFromContext(c echo.Context) (uint, error) {
	id, ok := c.Get(middleware.UserIDKey).(uint)
	if !ok || id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

func parseUintParam(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(v), nil
}

// bindAndValidate binds the request body into req and runs the registered validator
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

func paginationFromQuery(c echo.Context) models.PaginationParams {
	var params models.PaginationParams
	params.Page, _ = strconv.Atoi(c.QueryParam("page"))
	params.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	params.Normalize()
	return params
}
