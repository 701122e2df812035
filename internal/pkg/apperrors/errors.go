package apperrors

import "errors"

var (
	// ErrValidation malformed input, rejected before any mutation
	ErrValidation = errors.New("validation failed")

	// ErrRideNotFound ride id unknown
	ErrRideNotFound = errors.New("ride not found")

	// ErrBookingNotFound booking id unknown
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInsufficientSeats expected contention outcome, the ride is fully booked
	ErrInsufficientSeats = errors.New("insufficient seats available")

	// ErrHoldExpired the reservation hold lapsed before commit
	ErrHoldExpired = errors.New("reservation hold expired")

	// ErrBookingExpired the booking's hold lapsed, the booking was cancelled
	ErrBookingExpired = errors.New("booking expired")

	// ErrTokenConsumed the reservation token was already committed or released
	ErrTokenConsumed = errors.New("reservation token already consumed")
)
