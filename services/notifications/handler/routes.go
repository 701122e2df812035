package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/numpang/numpang/internal/pkg/models"
	natspkg "github.com/numpang/numpang/internal/pkg/nats"
	"github.com/numpang/numpang/services/notifications"
	httpHandler "github.com/numpang/numpang/services/notifications/handler/http"
	natsHandler "github.com/numpang/numpang/services/notifications/handler/nats"
)

// Handler combines all handlers for the notifications service
type Handler struct {
	notificationsHTTP *httpHandler.NotificationsHandler
	notificationsNATS *natsHandler.NotificationsHandler
	cfg               *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	notificationUC notifications.NotificationUC,
	natsClient *natspkg.Client,
	cfg *models.Config,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		notificationsHTTP: httpHandler.NewNotificationsHandler(notificationUC),
		notificationsNATS: natsHandler.NewNotificationsHandler(notificationUC, natsClient, nrApp),
		cfg:               cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	usersGroup := e.Group("/users")
	usersGroup.GET("/:userID/notifications/unread", h.notificationsHTTP.GetUnreadCount)
	usersGroup.POST("/:userID/notifications/read", h.notificationsHTTP.MarkRead)
}

// InitNATSConsumers initializes all NATS consumers
func (h *Handler) InitNATSConsumers() error {
	return h.notificationsNATS.InitNATSConsumers()
}

// Close drains NATS subscriptions
func (h *Handler) Close() {
	h.notificationsNATS.Close()
}
