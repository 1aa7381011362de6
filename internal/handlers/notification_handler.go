package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DashCode47/espebackend/internal/repositories"
)

// NotificationHandler handles the in-app notification inbox
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers notification routes on the protected group
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// GetNotifications lists the caller's notifications with the unread count
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID := getUserID(c)
	page, limit := pagination(c, 20)

	notifications, total, err := h.notificationRepository.ListByUser(userID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	unread, err := h.notificationRepository.UnreadCount(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccess(c, http.StatusOK, echo.Map{
		"notifications": notifications,
		"unreadCount":   unread,
		"pagination":    paginationMeta(page, limit, total),
	})
}

// MarkAsRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	userID := getUserID(c)

	notification, err := h.notificationRepository.GetNotificationByID(c.Param("id"))
	if err != nil {
		return notFoundOr(err, "Notification")
	}
	if notification.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "This notification does not belong to you")
	}

	if err := h.notificationRepository.MarkAsRead(notification.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccessMessage(c, http.StatusOK, "Notification marked as read", echo.Map{"id": notification.ID})
}

// MarkAllAsRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	userID := getUserID(c)

	if err := h.notificationRepository.MarkAllAsRead(userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return respondSuccessMessage(c, http.StatusOK, "All notifications marked as read", nil)
}
