package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/socialfeed/backend/internal/models"
	"github.com/anonto42/socialfeed/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
	g.GET("/notifications/:id", h.GetNotification)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications lists the caller's notifications newest first, ?unread_only=true to filter
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	var query models.NotificationQuery
	if raw := c.QueryParam("unread_only"); raw != "" {
		if query.UnreadOnly, err = strconv.ParseBool(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid unread_only")
		}
	}

	res, err := h.notificationService.List(c.Request().Context(), userID, query, paginationFromQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *NotificationHandler) GetNotification(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	n, err := h.notificationService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	count, err := h.notificationService.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.UnreadCountResponse{Count: count})
}

// MarkAsRead marks one notification read. Repeating it is harmless.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return err
	}

	n, err := h.notificationService.MarkAllRead(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.MarkAllReadResponse{Updated: n})
}
