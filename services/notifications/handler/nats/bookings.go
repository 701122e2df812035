package nats

import (
	"context"
	"encoding/json"

	natsio "github.com/nats-io/nats.go"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/numpang/numpang/internal/pkg/constants"
	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/models"
	natspkg "github.com/numpang/numpang/internal/pkg/nats"
	nrpkg "github.com/numpang/numpang/internal/pkg/newrelic"
	"github.com/numpang/numpang/services/notifications"
)

// NotificationsHandler consumes booking events and bumps unread counters.
// Requested and cancelled bookings notify the driver; confirmations notify
// the passenger.
type NotificationsHandler struct {
	notificationUC notifications.NotificationUC
	natsClient     *natspkg.Client
	subs           []*natsio.Subscription
	nrApp          *newrelic.Application
}

// NewNotificationsHandler creates a new notifications NATS handler
func NewNotificationsHandler(
	notificationUC notifications.NotificationUC,
	client *natspkg.Client,
	nrApp *newrelic.Application,
) *NotificationsHandler {
	return &NotificationsHandler{
		notificationUC: notificationUC,
		natsClient:     client,
		subs:           make([]*natsio.Subscription, 0),
		nrApp:          nrApp,
	}
}

// InitNATSConsumers subscribes to all booking lifecycle subjects
func (h *NotificationsHandler) InitNATSConsumers() error {
	subjects := []string{
		constants.SubjectBookingRequested,
		constants.SubjectBookingConfirmed,
		constants.SubjectBookingCancelled,
	}

	for _, subject := range subjects {
		sub, err := h.natsClient.Subscribe(subject, h.handleBookingEvent)
		if err != nil {
			logger.Error("Failed to subscribe to booking subject",
				logger.String("subject", subject),
				logger.ErrorField(err))
			return err
		}
		h.subs = append(h.subs, sub)
		logger.Info("Subscribed to booking subject", logger.String("subject", subject))
	}

	return nil
}

func (h *NotificationsHandler) handleBookingEvent(msg *natsio.Msg) {
	txn := h.nrApp.StartTransaction("NATS.Notifications.HandleBookingEvent")
	defer txn.End()

	nrpkg.AddTransactionAttribute(txn, "message.subject", msg.Subject)
	nrpkg.AddTransactionAttribute(txn, "message.size", len(msg.Data))

	ctx := newrelic.NewContext(context.Background(), txn)

	var event models.BookingEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		logger.Error("Failed to unmarshal booking event",
			logger.String("subject", msg.Subject),
			logger.ErrorField(err))
		return
	}

	recipient := recipientFor(msg.Subject, event)
	if recipient == "" {
		logger.Warn("Booking event carries no recipient",
			logger.String("subject", msg.Subject),
			logger.String("booking_id", event.BookingID.String()))
		return
	}

	nrpkg.AddTransactionAttribute(txn, "booking.id", event.BookingID.String())
	nrpkg.AddTransactionAttribute(txn, "recipient.id", recipient)

	if err := h.notificationUC.IncrementUnread(ctx, recipient); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		logger.Error("Failed to increment unread counter",
			logger.String("subject", msg.Subject),
			logger.String("user_id", recipient),
			logger.ErrorField(err))
		return
	}

	logger.Info("Unread counter incremented for booking event",
		logger.String("subject", msg.Subject),
		logger.String("booking_id", event.BookingID.String()),
		logger.String("user_id", recipient))
}

// recipientFor picks who should be notified for a booking transition
func recipientFor(subject string, event models.BookingEvent) string {
	switch subject {
	case constants.SubjectBookingConfirmed:
		return event.PassengerID.String()
	case constants.SubjectBookingRequested, constants.SubjectBookingCancelled:
		return event.DriverID.String()
	default:
		return ""
	}
}

// Close drains all subscriptions
func (h *NotificationsHandler) Close() {
	for _, sub := range h.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", logger.ErrorField(err))
		}
	}
	h.subs = nil
}
