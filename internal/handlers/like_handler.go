package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	contentService services.ContentService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(contentService services.ContentService) *LikeHandler {
	return &LikeHandler{contentService: contentService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/likes", h.LikePost)
	g.DELETE("/posts/:post_id/likes", h.UnlikePost)
	g.GET("/posts/:post_id/likes/count", h.GetLikesCountForPost)
	g.GET("/posts/:post_id/likes/status", h.GetUserLikeStatusForPost)
}

// LikePost handles liking a post. A second like by the same user is a 409.
func (h *LikeHandler) LikePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	like, err := h.contentService.Like(c.Request().Context(), userID, c.Param("post_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, like)
}

// UnlikePost handles unliking a post
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	if err := h.contentService.Unlike(c.Request().Context(), userID, c.Param("post_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	postID := c.Param("post_id")
	count, err := h.contentService.LikeCount(c.Request().Context(), postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "likes_count": count})
}

func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	postID := c.Param("post_id")

	liked, err := h.contentService.HasLiked(c.Request().Context(), userID, postID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "liked": liked})
}
