package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	contentService services.ContentService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(contentService services.ContentService) *PostHandler {
	return &PostHandler{contentService: contentService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.contentService.CreatePost(c.Request().Context(), userID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.contentService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// GetPosts lists posts newest first. ?author= takes a comma separated list
// of user ids, ?search= matches content case-insensitively.
func (h *PostHandler) GetPosts(c echo.Context) error {
	var query models.PostQuery
	if raw := c.QueryParam("author"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
			}
			query.AuthorIDs = append(query.AuthorIDs, uint(id))
		}
	}
	query.Search = strings.TrimSpace(c.QueryParam("search"))

	res, err := h.contentService.ListPosts(c.Request().Context(), query, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// UpdatePost updates an existing post
func (h *PostHandler) UpdatePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.contentService.UpdatePost(c.Request().Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post along with its comments and likes
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	if err := h.contentService.DeletePost(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
