package bookings

import (
	"context"

	"github.com/numpang/numpang/internal/pkg/models"
)

// BookingGW defines the interface for publishing booking events
//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/numpang/numpang/services/bookings BookingGW
type BookingGW interface {
	PublishBookingRequested(ctx context.Context, event models.BookingEvent) error
	PublishBookingConfirmed(ctx context.Context, event models.BookingEvent) error
	PublishBookingCancelled(ctx context.Context, event models.BookingEvent) error
}
