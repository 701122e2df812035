package nats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	natsio "github.com/nats-io/nats.go"
	"github.com/numpang/numpang/internal/pkg/constants"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/notifications/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingEventMsg(t *testing.T, subject string, event models.BookingEvent) *natsio.Msg {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return &natsio.Msg{Subject: subject, Data: data}
}

func sampleEvent() models.BookingEvent {
	return models.BookingEvent{
		BookingID:   uuid.New(),
		RideID:      uuid.New(),
		PassengerID: uuid.New(),
		DriverID:    uuid.New(),
		Seats:       2,
		Status:      models.BookingStatusPending,
		OccurredAt:  time.Now(),
	}
}

func TestHandleBookingEvent_RequestedNotifiesDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockNotificationUC(ctrl)
	event := sampleEvent()
	mockUC.EXPECT().IncrementUnread(gomock.Any(), event.DriverID.String()).Return(nil)

	handler := NewNotificationsHandler(mockUC, nil, nil)
	handler.handleBookingEvent(bookingEventMsg(t, constants.SubjectBookingRequested, event))
}

func TestHandleBookingEvent_ConfirmedNotifiesPassenger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockNotificationUC(ctrl)
	event := sampleEvent()
	event.Status = models.BookingStatusConfirmed
	mockUC.EXPECT().IncrementUnread(gomock.Any(), event.PassengerID.String()).Return(nil)

	handler := NewNotificationsHandler(mockUC, nil, nil)
	handler.handleBookingEvent(bookingEventMsg(t, constants.SubjectBookingConfirmed, event))
}

func TestHandleBookingEvent_CancelledNotifiesDriver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockNotificationUC(ctrl)
	event := sampleEvent()
	event.Status = models.BookingStatusCancelled
	mockUC.EXPECT().IncrementUnread(gomock.Any(), event.DriverID.String()).Return(nil)

	handler := NewNotificationsHandler(mockUC, nil, nil)
	handler.handleBookingEvent(bookingEventMsg(t, constants.SubjectBookingCancelled, event))
}

func TestHandleBookingEvent_MalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No IncrementUnread call expected
	mockUC := mocks.NewMockNotificationUC(ctrl)

	handler := NewNotificationsHandler(mockUC, nil, nil)
	handler.handleBookingEvent(&natsio.Msg{
		Subject: constants.SubjectBookingRequested,
		Data:    []byte("{not json"),
	})
}

func TestRecipientFor_UnknownSubject(t *testing.T) {
	assert.Equal(t, "", recipientFor("booking.unknown", sampleEvent()))
}
