package models

import (
	"time"

	"github.com/google/uuid"
)

// RideStatus represents the lifecycle state of a published ride
type RideStatus string

const (
	RideStatusActive  RideStatus = "active"
	RideStatusRetired RideStatus = "retired"
)

// Car describes the vehicle a ride is offered with
type Car struct {
	Model string `json:"model" db:"car_model"`
	Color string `json:"color" db:"car_color"`
	Plate string `json:"plate" db:"car_plate"`
	HasAC bool   `json:"has_ac" db:"car_has_ac"`
}

// RoutePoint is one end of a ride's route
type RoutePoint struct {
	City      string  `json:"city"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Ride represents a published trip offering with a fixed seat capacity.
// AvailableSeats is mutated only through the seat inventory manager.
type Ride struct {
	RideID         uuid.UUID  `json:"ride_id" db:"ride_id"`
	DriverID       uuid.UUID  `json:"driver_id" db:"driver_id"`
	Car            Car        `json:"car"`
	Origin         RoutePoint `json:"origin"`
	Destination    RoutePoint `json:"destination"`
	DepartureTime  time.Time  `json:"departure_time" db:"departure_time"`
	ArrivalTime    time.Time  `json:"arrival_time" db:"arrival_time"`
	PricePerSeat   int        `json:"price_per_seat" db:"price_per_seat"`
	TotalSeats     int        `json:"total_seats" db:"total_seats"`
	AvailableSeats int        `json:"available_seats" db:"available_seats"`
	InstantBooking bool       `json:"instant_booking" db:"instant_booking"`
	WomenOnly      bool       `json:"women_only" db:"women_only"`
	Status         RideStatus `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Duration returns the scheduled travel time
func (r *Ride) Duration() time.Duration {
	return r.ArrivalTime.Sub(r.DepartureTime)
}

// RideUpdate carries the mutable non-seat fields of a ride.
// Seat counters are deliberately absent; they belong to the inventory manager.
type RideUpdate struct {
	Car            *Car    `json:"car,omitempty"`
	OriginAddress  *string `json:"origin_address,omitempty"`
	DestAddress    *string `json:"destination_address,omitempty"`
	PricePerSeat   *int    `json:"price_per_seat,omitempty"`
	InstantBooking *bool   `json:"instant_booking,omitempty"`
	WomenOnly      *bool   `json:"women_only,omitempty"`
}

// SearchRequest is a rider's search over the ride catalog
type SearchRequest struct {
	OriginCity string    `json:"origin_city" query:"origin"`
	DestCity   string    `json:"destination_city" query:"destination"`
	Date       time.Time `json:"date"`
	FilterIDs  []string  `json:"filters"`
}
