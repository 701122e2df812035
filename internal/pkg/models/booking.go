package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a rider's claim on N seats of a ride.
// A booking moves pending -> confirmed or pending -> cancelled, never back.
type Booking struct {
	BookingID   uuid.UUID     `json:"booking_id" db:"booking_id"`
	RideID      uuid.UUID     `json:"ride_id" db:"ride_id"`
	UserID      uuid.UUID     `json:"user_id" db:"user_id"`
	Seats       int           `json:"seats" db:"seats"`
	TotalPrice  int           `json:"total_price" db:"total_price"`
	Status      BookingStatus `json:"status" db:"status"`
	HoldTokenID uuid.UUID     `json:"-" db:"hold_token_id"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingRequest is the payload for requesting a booking
type BookingRequest struct {
	RideID string `json:"ride_id"`
	UserID string `json:"user_id"`
	Seats  int    `json:"seats"`
}

// BookingEvent is published to NATS whenever a booking changes state
type BookingEvent struct {
	BookingID   uuid.UUID     `json:"booking_id"`
	RideID      uuid.UUID     `json:"ride_id"`
	PassengerID uuid.UUID     `json:"passenger_id"`
	DriverID    uuid.UUID     `json:"driver_id"`
	Seats       int           `json:"seats"`
	Status      BookingStatus `json:"status"`
	OccurredAt  time.Time     `json:"occurred_at"`
}
