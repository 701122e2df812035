package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/apperrors"
)

// Seat counter access. These methods are the only writers of
// rides.available_seats and are reached exclusively through the seat
// inventory manager, which serializes callers per ride. The SQL guards
// are a second line of defense: even a misbehaving caller cannot push
// the counter below zero or above total_seats.

// AvailableSeats reads the current available seat count of a ride
func (r *RideRepo) AvailableSeats(ctx context.Context, rideID uuid.UUID) (int, error) {
	query := `SELECT available_seats FROM rides WHERE ride_id = $1`

	var available int
	err := r.db.QueryRowContext(ctx, query, rideID).Scan(&available)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, apperrors.ErrRideNotFound
		}
		return 0, err
	}

	return available, nil
}

// DeductSeats atomically decrements available_seats by seats.
// Returns ErrInsufficientSeats when the ride has fewer seats left.
func (r *RideRepo) DeductSeats(ctx context.Context, rideID uuid.UUID, seats int) error {
	query := `
		UPDATE rides
		SET available_seats = available_seats - $1, updated_at = $2
		WHERE ride_id = $3 AND available_seats >= $1
	`

	result, err := r.db.ExecContext(ctx, query, seats, time.Now(), rideID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Distinguish a missing ride from a fully booked one
		if _, err := r.AvailableSeats(ctx, rideID); err != nil {
			return err
		}
		return apperrors.ErrInsufficientSeats
	}

	return nil
}

// RestoreSeats returns seats to available_seats, capped at total_seats
func (r *RideRepo) RestoreSeats(ctx context.Context, rideID uuid.UUID, seats int) error {
	query := `
		UPDATE rides
		SET available_seats = LEAST(available_seats + $1, total_seats), updated_at = $2
		WHERE ride_id = $3
	`

	result, err := r.db.ExecContext(ctx, query, seats, time.Now(), rideID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.ErrRideNotFound
	}

	return nil
}
