package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/numpang/numpang/internal/pkg/apperrors"
	"github.com/numpang/numpang/internal/pkg/models"
)

// BookingRepo provides Postgres access to the booking ledger
type BookingRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(cfg *models.Config, db *sqlx.DB) *BookingRepo {
	return &BookingRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateBooking inserts a new booking record
func (r *BookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			booking_id, ride_id, user_id, seats, total_price,
			status, hold_token_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		booking.BookingID,
		booking.RideID,
		booking.UserID,
		booking.Seats,
		booking.TotalPrice,
		booking.Status,
		booking.HoldTokenID,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	return err
}

// GetBooking retrieves a booking by ID
func (r *BookingRepo) GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	query := `
		SELECT booking_id, ride_id, user_id, seats, total_price,
			status, hold_token_id, created_at, updated_at
		FROM bookings
		WHERE booking_id = $1
	`

	booking := &models.Booking{}
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(
		&booking.BookingID,
		&booking.RideID,
		&booking.UserID,
		&booking.Seats,
		&booking.TotalPrice,
		&booking.Status,
		&booking.HoldTokenID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

// ListByStatus returns every booking whose status is one of statuses,
// oldest first. Used to rebuild the seat hold table after a restart.
func (r *BookingRepo) ListByStatus(ctx context.Context, statuses []models.BookingStatus) ([]models.Booking, error) {
	placeholders := make([]string, 0, len(statuses))
	args := make([]interface{}, 0, len(statuses))
	for _, status := range statuses {
		args = append(args, status)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(
		`SELECT booking_id, ride_id, user_id, seats, total_price,
			status, hold_token_id, created_at, updated_at
		FROM bookings
		WHERE status IN (%s)
		ORDER BY created_at ASC`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Booking
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(
			&booking.BookingID,
			&booking.RideID,
			&booking.UserID,
			&booking.Seats,
			&booking.TotalPrice,
			&booking.Status,
			&booking.HoldTokenID,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}

	return result, rows.Err()
}

// UpdateBookingStatus flips a booking's status, guarded so a transition
// only happens from one of the allowed source states
func (r *BookingRepo) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, from []models.BookingStatus, to models.BookingStatus) error {
	placeholders := make([]string, 0, len(from))
	args := []interface{}{to, time.Now(), bookingID}
	for _, status := range from {
		args = append(args, status)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE booking_id = $3 AND status IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Either the booking does not exist or its status already moved on
		if _, err := r.GetBooking(ctx, bookingID); err != nil {
			return err
		}
		return fmt.Errorf("%w: booking %s is not in a valid state for %s", apperrors.ErrValidation, bookingID, to)
	}

	return nil
}
