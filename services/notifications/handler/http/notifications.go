package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/numpang/numpang/internal/pkg/logger"
	nrpkg "github.com/numpang/numpang/internal/pkg/newrelic"
	"github.com/numpang/numpang/internal/utils"
	"github.com/numpang/numpang/services/notifications"
)

// NotificationsHandler handles HTTP requests for unread counters
type NotificationsHandler struct {
	notificationUC notifications.NotificationUC
}

// NewNotificationsHandler creates a new notifications HTTP handler
func NewNotificationsHandler(notificationUC notifications.NotificationUC) *NotificationsHandler {
	return &NotificationsHandler{
		notificationUC: notificationUC,
	}
}

// GetUnreadCount returns the user's unread notification counter.
// This endpoint degrades rather than fails: a counter-store outage yields
// the last value observed in-process.
func (h *NotificationsHandler) GetUnreadCount(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Notifications.GetUnreadCount")

	userID := c.Param("userID")
	if userID == "" {
		return utils.BadRequestResponse(c, "User ID is required")
	}
	nrpkg.AddTransactionAttribute(txn, "user.id", userID)

	count := h.notificationUC.UnreadCount(c.Request().Context(), userID)
	return utils.SuccessResponse(c, http.StatusOK, "Unread count retrieved successfully", count)
}

// MarkRead clears the user's unread notification counter
func (h *NotificationsHandler) MarkRead(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Notifications.MarkRead")

	userID := c.Param("userID")
	if userID == "" {
		return utils.BadRequestResponse(c, "User ID is required")
	}
	nrpkg.AddTransactionAttribute(txn, "user.id", userID)

	if err := h.notificationUC.MarkRead(c.Request().Context(), userID); err != nil {
		logger.Error("Failed to mark notifications read",
			logger.String("user_id", userID),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Failed to mark notifications read")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Notifications marked read", nil)
}
