package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/apperrors"
	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/models"
	nrpkg "github.com/numpang/numpang/internal/pkg/newrelic"
	"github.com/numpang/numpang/services/bookings"
)

// bookingUC implements the bookings.BookingUC interface.
// It co-transitions booking records with the seat inventory: every seat
// movement goes through the inventory manager, every outcome lands in the
// ledger, and a ledger write failure compensates by releasing the hold.
type bookingUC struct {
	cfg          *models.Config
	bookingsRepo bookings.BookingRepo
	catalog      bookings.RideCatalog
	seats        bookings.SeatInventory
	bookingsGW   bookings.BookingGW
}

// NewBookingUC creates a new booking use case
func NewBookingUC(
	cfg *models.Config,
	bookingRepo bookings.BookingRepo,
	catalog bookings.RideCatalog,
	seats bookings.SeatInventory,
	bookingGW bookings.BookingGW,
) bookings.BookingUC {
	return &bookingUC{
		cfg:          cfg,
		bookingsRepo: bookingRepo,
		catalog:      catalog,
		seats:        seats,
		bookingsGW:   bookingGW,
	}
}

// RequestBooking reserves seats and records a pending booking
func (uc *bookingUC) RequestBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	txn := nrpkg.FromContext(ctx)
	segment := nrpkg.StartSegment(txn, "Bookings.RequestBooking")
	if segment != nil {
		defer segment.End()
	}

	rideID, err := uuid.Parse(req.RideID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ride id", apperrors.ErrValidation)
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", apperrors.ErrValidation)
	}
	if req.Seats < 1 {
		return nil, fmt.Errorf("%w: seats must be at least 1", apperrors.ErrValidation)
	}

	ride, err := uc.catalog.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if !ride.DepartureTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: ride has already departed", apperrors.ErrValidation)
	}

	token, err := uc.seats.Reserve(ctx, rideID, req.Seats)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		BookingID:   uuid.New(),
		RideID:      rideID,
		UserID:      userID,
		Seats:       req.Seats,
		TotalPrice:  req.Seats * ride.PricePerSeat,
		Status:      models.BookingStatusPending,
		HoldTokenID: token.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.bookingsRepo.CreateBooking(ctx, booking); err != nil {
		// Compensate: never leave seats deducted without a ledger record
		if releaseErr := uc.seats.Release(ctx, token.ID); releaseErr != nil {
			logger.Error("Failed to release hold after ledger write failure",
				logger.String("ride_id", rideID.String()),
				logger.String("token_id", token.ID.String()),
				logger.Err(releaseErr))
		}
		return nil, err
	}

	uc.publishEvent(ctx, booking, ride.DriverID, uc.bookingsGW.PublishBookingRequested)

	logger.Info("Booking requested",
		logger.String("booking_id", booking.BookingID.String()),
		logger.String("ride_id", rideID.String()),
		logger.Int("seats", req.Seats))

	return booking, nil
}

// ConfirmBooking commits the hold and flips the booking to confirmed.
// An expired hold cancels the booking and surfaces ErrBookingExpired.
func (uc *bookingUC) ConfirmBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", apperrors.ErrValidation)
	}

	booking, err := uc.bookingsRepo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case models.BookingStatusConfirmed:
		// Confirm is idempotent, the commit below would observe the same result
		return booking, nil
	case models.BookingStatusCancelled:
		return nil, fmt.Errorf("%w: booking is cancelled", apperrors.ErrValidation)
	}

	if _, err := uc.seats.Commit(ctx, booking.HoldTokenID); err != nil {
		if errors.Is(err, apperrors.ErrHoldExpired) {
			if updErr := uc.bookingsRepo.UpdateBookingStatus(ctx, id,
				[]models.BookingStatus{models.BookingStatusPending},
				models.BookingStatusCancelled); updErr != nil {
				logger.Error("Failed to cancel expired booking",
					logger.String("booking_id", bookingID),
					logger.Err(updErr))
			}
			return nil, apperrors.ErrBookingExpired
		}
		return nil, err
	}

	if err := uc.bookingsRepo.UpdateBookingStatus(ctx, id,
		[]models.BookingStatus{models.BookingStatusPending},
		models.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusConfirmed

	uc.publishBookingEvent(ctx, booking, uc.bookingsGW.PublishBookingConfirmed)

	logger.Info("Booking confirmed",
		logger.String("booking_id", bookingID),
		logger.String("ride_id", booking.RideID.String()))

	return booking, nil
}

// CancelBooking releases the hold and flips the booking to cancelled.
// Valid from pending or confirmed; release is safe against duplicate or
// late invocation.
func (uc *bookingUC) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", apperrors.ErrValidation)
	}

	booking, err := uc.bookingsRepo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status == models.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: booking is already cancelled", apperrors.ErrValidation)
	}

	if err := uc.seats.Release(ctx, booking.HoldTokenID); err != nil {
		return nil, err
	}

	if err := uc.bookingsRepo.UpdateBookingStatus(ctx, id,
		[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed},
		models.BookingStatusCancelled); err != nil {
		return nil, err
	}
	booking.Status = models.BookingStatusCancelled

	uc.publishBookingEvent(ctx, booking, uc.bookingsGW.PublishBookingCancelled)

	logger.Info("Booking cancelled",
		logger.String("booking_id", bookingID),
		logger.String("ride_id", booking.RideID.String()))

	return booking, nil
}

// GetBooking retrieves a booking by ID
func (uc *bookingUC) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking id", apperrors.ErrValidation)
	}

	return uc.bookingsRepo.GetBooking(ctx, id)
}

// publishBookingEvent looks up the ride for its driver and publishes.
// Event delivery is a side effect; failures are logged, never surfaced.
func (uc *bookingUC) publishBookingEvent(ctx context.Context, booking *models.Booking, publish func(context.Context, models.BookingEvent) error) {
	ride, err := uc.catalog.GetRide(ctx, booking.RideID)
	if err != nil {
		logger.Warn("Failed to load ride for booking event",
			logger.String("booking_id", booking.BookingID.String()),
			logger.Err(err))
		return
	}
	uc.publishEvent(ctx, booking, ride.DriverID, publish)
}

func (uc *bookingUC) publishEvent(ctx context.Context, booking *models.Booking, driverID uuid.UUID, publish func(context.Context, models.BookingEvent) error) {
	event := models.BookingEvent{
		BookingID:   booking.BookingID,
		RideID:      booking.RideID,
		PassengerID: booking.UserID,
		DriverID:    driverID,
		Seats:       booking.Seats,
		Status:      booking.Status,
		OccurredAt:  time.Now(),
	}

	if err := publish(ctx, event); err != nil {
		logger.Warn("Failed to publish booking event",
			logger.String("booking_id", booking.BookingID.String()),
			logger.String("status", string(booking.Status)),
			logger.Err(err))
	}
}
