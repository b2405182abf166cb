package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/users/search", h.SearchUsers)
	g.GET("/users/:id", h.GetUser)
}

// GetProfile returns the caller's own profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetUser returns another user's profile with follow counts
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// SearchUsers searches users by username or email, ?q=
func (h *UserHandler) SearchUsers(c echo.Context) error {
	res, err := h.userService.Search(c.Request().Context(), c.QueryParam("q"), paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
