package usecase

import (
	"context"
	"time"

	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/bookings"
	"github.com/numpang/numpang/services/bookings/inventory"
)

// RecoverInventory rebuilds the in-memory token table from the booking
// ledger. Seat counters live durably in Postgres, but the tokens guarding
// them do not survive a restart; without this pass every pre-restart
// pending hold would be unreclaimable and every confirmed booking would
// lose its seats on cancel.
//
// Pending bookings become live holds again with a fresh TTL, so they either
// confirm normally or lapse and restore their seats. Confirmed bookings
// become committed tokens, so a later cancel still finds them.
func RecoverInventory(ctx context.Context, repo bookings.BookingRepo, seats bookings.SeatInventory, holdTTL time.Duration) error {
	open, err := repo.ListByStatus(ctx, []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
	})
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(holdTTL)
	var held, committed int
	for _, booking := range open {
		token := inventory.Token{
			ID:     booking.HoldTokenID,
			RideID: booking.RideID,
			Seats:  booking.Seats,
		}

		switch booking.Status {
		case models.BookingStatusPending:
			token.ExpiresAt = expiresAt
			seats.AdoptHold(token)
			held++
		case models.BookingStatusConfirmed:
			seats.AdoptCommitted(token, booking.UpdatedAt)
			committed++
		}
	}

	if held > 0 || committed > 0 {
		logger.Info("Recovered seat inventory from ledger",
			logger.Int("holds", held),
			logger.Int("committed", committed))
	}

	return nil
}
