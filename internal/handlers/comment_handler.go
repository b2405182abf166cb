package handlers

import (
	"net/http"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	contentService services.ContentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(contentService services.ContentService) *CommentHandler {
	return &CommentHandler{contentService: contentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsForPost)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.contentService.CreateComment(c.Request().Context(), userID, c.Param("post_id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsForPost lists a post's comments newest first
func (h *CommentHandler) GetCommentsForPost(c echo.Context) error {
	res, err := h.contentService.ListComments(c.Request().Context(), c.Param("post_id"), paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	commentID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	var req models.UpdateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.contentService.UpdateComment(c.Request().Context(), userID, commentID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	commentID, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.contentService.DeleteComment(c.Request().Context(), userID, commentID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
