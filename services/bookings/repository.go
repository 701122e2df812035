package bookings

import (
	"context"

	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/models"
)

// BookingRepo defines the interface for booking ledger data access
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/numpang/numpang/services/bookings BookingRepo
type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error)
	// UpdateBookingStatus flips the status only when the current status is
	// one of from; transitions are one-way and never revisited.
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, from []models.BookingStatus, to models.BookingStatus) error
	ListByStatus(ctx context.Context, statuses []models.BookingStatus) ([]models.Booking, error)
}

// RideCatalog is the read-only slice of the ride catalog the ledger needs.
// Implemented by the rides repository.
//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks github.com/numpang/numpang/services/bookings RideCatalog
type RideCatalog interface {
	GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
}
