package gateway

import (
	"context"
	"encoding/json"

	"github.com/numpang/numpang/internal/pkg/constants"
	"github.com/numpang/numpang/internal/pkg/models"
	natspkg "github.com/numpang/numpang/internal/pkg/nats"
	"github.com/numpang/numpang/services/bookings"
)

// BookingGW handles NATS publishing for booking events
type BookingGW struct {
	natsClient *natspkg.Client
}

// NewBookingGW creates a new booking gateway
func NewBookingGW(client *natspkg.Client) bookings.BookingGW {
	return &BookingGW{
		natsClient: client,
	}
}

// PublishBookingRequested publishes a booking requested event to NATS
func (g *BookingGW) PublishBookingRequested(ctx context.Context, event models.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectBookingRequested, data)
}

// PublishBookingConfirmed publishes a booking confirmed event to NATS
func (g *BookingGW) PublishBookingConfirmed(ctx context.Context, event models.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectBookingConfirmed, data)
}

// PublishBookingCancelled publishes a booking cancelled event to NATS
func (g *BookingGW) PublishBookingCancelled(ctx context.Context, event models.BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.natsClient.Publish(constants.SubjectBookingCancelled, data)
}
