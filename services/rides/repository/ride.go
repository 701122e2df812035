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

const rideColumns = `
	ride_id, driver_id,
	car_model, car_color, car_plate, car_has_ac,
	origin_city, origin_address, origin_latitude, origin_longitude,
	destination_city, destination_address, destination_latitude, destination_longitude,
	departure_time, arrival_time, price_per_seat,
	total_seats, available_seats, instant_booking, women_only,
	status, created_at, updated_at`

// RideRepo provides Postgres access to the ride catalog
type RideRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewRideRepository creates a new ride repository
func NewRideRepository(cfg *models.Config, db *sqlx.DB) *RideRepo {
	return &RideRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateRide inserts a new ride into the catalog.
// available_seats starts equal to total_seats.
func (r *RideRepo) CreateRide(ctx context.Context, ride *models.Ride) error {
	query := `
		INSERT INTO rides (
			ride_id, driver_id,
			car_model, car_color, car_plate, car_has_ac,
			origin_city, origin_address, origin_latitude, origin_longitude,
			destination_city, destination_address, destination_latitude, destination_longitude,
			departure_time, arrival_time, price_per_seat,
			total_seats, available_seats, instant_booking, women_only,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		ride.RideID,
		ride.DriverID,
		ride.Car.Model,
		ride.Car.Color,
		ride.Car.Plate,
		ride.Car.HasAC,
		ride.Origin.City,
		ride.Origin.Address,
		ride.Origin.Latitude,
		ride.Origin.Longitude,
		ride.Destination.City,
		ride.Destination.Address,
		ride.Destination.Latitude,
		ride.Destination.Longitude,
		ride.DepartureTime,
		ride.ArrivalTime,
		ride.PricePerSeat,
		ride.TotalSeats,
		ride.AvailableSeats,
		ride.InstantBooking,
		ride.WomenOnly,
		ride.Status,
		ride.CreatedAt,
		ride.UpdatedAt,
	)

	return err
}

// GetRide retrieves a ride by ID
func (r *RideRepo) GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	query := fmt.Sprintf(`SELECT %s FROM rides WHERE ride_id = $1`, rideColumns)

	row := r.db.QueryRowContext(ctx, query, rideID)

	ride, err := scanRide(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrRideNotFound
		}
		return nil, err
	}

	return ride, nil
}

// UpdateRide applies non-seat field changes to a ride
func (r *RideRepo) UpdateRide(ctx context.Context, rideID uuid.UUID, update models.RideUpdate) error {
	sets := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Car != nil {
		addSet("car_model", update.Car.Model)
		addSet("car_color", update.Car.Color)
		addSet("car_plate", update.Car.Plate)
		addSet("car_has_ac", update.Car.HasAC)
	}
	if update.OriginAddress != nil {
		addSet("origin_address", *update.OriginAddress)
	}
	if update.DestAddress != nil {
		addSet("destination_address", *update.DestAddress)
	}
	if update.PricePerSeat != nil {
		addSet("price_per_seat", *update.PricePerSeat)
	}
	if update.InstantBooking != nil {
		addSet("instant_booking", *update.InstantBooking)
	}
	if update.WomenOnly != nil {
		addSet("women_only", *update.WomenOnly)
	}

	args = append(args, rideID)
	query := fmt.Sprintf("UPDATE rides SET %s WHERE ride_id = $%d", strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
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

// ListActive retrieves rides whose departure is after asOf and that are not retired
func (r *RideRepo) ListActive(ctx context.Context, asOf time.Time) ([]models.Ride, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM rides
		WHERE status = $1 AND departure_time > $2
		ORDER BY departure_time ASC
	`, rideColumns)

	rows, err := r.db.QueryContext(ctx, query, models.RideStatusActive, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ride)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// RetireExpired soft-retires rides whose departure time has passed.
// Rides are never deleted while bookings reference them.
func (r *RideRepo) RetireExpired(ctx context.Context, asOf time.Time) (int64, error) {
	query := `UPDATE rides SET status = $1, updated_at = $2 WHERE status = $3 AND departure_time <= $4`

	result, err := r.db.ExecContext(ctx, query, models.RideStatusRetired, time.Now(), models.RideStatusActive, asOf)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRide(row rowScanner) (*models.Ride, error) {
	ride := &models.Ride{}

	err := row.Scan(
		&ride.RideID,
		&ride.DriverID,
		&ride.Car.Model,
		&ride.Car.Color,
		&ride.Car.Plate,
		&ride.Car.HasAC,
		&ride.Origin.City,
		&ride.Origin.Address,
		&ride.Origin.Latitude,
		&ride.Origin.Longitude,
		&ride.Destination.City,
		&ride.Destination.Address,
		&ride.Destination.Latitude,
		&ride.Destination.Longitude,
		&ride.DepartureTime,
		&ride.ArrivalTime,
		&ride.PricePerSeat,
		&ride.TotalSeats,
		&ride.AvailableSeats,
		&ride.InstantBooking,
		&ride.WomenOnly,
		&ride.Status,
		&ride.CreatedAt,
		&ride.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return ride, nil
}
