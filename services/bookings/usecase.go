package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/bookings/inventory"
)

// BookingUC defines the interface for booking ledger business logic
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/numpang/numpang/services/bookings BookingUC
type BookingUC interface {
	RequestBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
}

// SeatInventory is the slice of the seat inventory manager the ledger
// depends on. Implemented by *inventory.Manager.
//go:generate mockgen -destination=mocks/mock_inventory.go -package=mocks github.com/numpang/numpang/services/bookings SeatInventory
type SeatInventory interface {
	Reserve(ctx context.Context, rideID uuid.UUID, seats int) (inventory.Token, error)
	Commit(ctx context.Context, tokenID uuid.UUID) (inventory.CommitResult, error)
	Release(ctx context.Context, tokenID uuid.UUID) error
	AdoptHold(token inventory.Token)
	AdoptCommitted(token inventory.Token, committedAt time.Time)
}
