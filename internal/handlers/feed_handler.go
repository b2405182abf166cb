package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService services.FeedService
	log         *zap.Logger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService services.FeedService, log *zap.Logger) *FeedHandler {
	return &FeedHandler{feedService: feedService, log: log}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/stream", h.StreamFeed)
}

// GetFeed returns posts by followed users, newest first
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	res, err := h.feedService.GetFeed(c.Request().Context(), userID, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// StreamFeed writes the whole feed as newline-delimited JSON, one post per
// line, flushing as it goes. ?limit= caps the number of posts. The status is
// sent before the first post, so a failure mid-stream ends the body early and
// is only visible in the log.
func (h *FeedHandler) StreamFeed(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "application/x-ndjson")
	res.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(res)
	sent := 0
	for post, err := range h.feedService.Stream(c.Request().Context(), userID) {
		if err != nil {
			h.log.Error("feed stream aborted",
				zap.Uint("user_id", userID), zap.Int("sent", sent), zap.Error(err))
			return err
		}
		if err := enc.Encode(post); err != nil {
			h.log.Warn("feed stream write failed",
				zap.Uint("user_id", userID), zap.Int("sent", sent), zap.Error(err))
			return err
		}
		res.Flush()
		sent++
		if limit > 0 && sent >= limit {
			break
		}
	}
	return nil
}
