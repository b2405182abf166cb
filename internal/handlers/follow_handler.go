package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/following", h.GetFollowing)
	g.GET("/users/:id/followers", h.GetFollowers)
}

// FollowUser follows a user. Following an already followed user succeeds.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.Follow(c.Request().Context(), currentUserID, targetID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Now following user", "following_id": targetID})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	targetID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(c.Request().Context(), currentUserID, targetID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Unfollowed user", "following_id": targetID})
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.followService.ListFollowing(c.Request().Context(), userID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.followService.ListFollowers(c.Request().Context(), userID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
