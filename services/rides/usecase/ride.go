package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/apperrors"
	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/rides"
)

// rideUC implements the rides.RideUC interface
type rideUC struct {
	cfg       *models.Config
	ridesRepo rides.RideRepo
}

// NewRideUC creates a new ride use case
func NewRideUC(cfg *models.Config, rideRepo rides.RideRepo) rides.RideUC {
	return &rideUC{
		cfg:       cfg,
		ridesRepo: rideRepo,
	}
}

// CreateRide validates and publishes a new ride offering
func (uc *rideUC) CreateRide(ctx context.Context, ride *models.Ride) (*models.Ride, error) {
	if ride.TotalSeats < 1 {
		return nil, fmt.Errorf("%w: total seats must be at least 1", apperrors.ErrValidation)
	}
	if ride.PricePerSeat < 0 {
		return nil, fmt.Errorf("%w: price per seat must not be negative", apperrors.ErrValidation)
	}
	if ride.Origin.City == "" || ride.Destination.City == "" {
		return nil, fmt.Errorf("%w: origin and destination cities are required", apperrors.ErrValidation)
	}
	if !ride.DepartureTime.Before(ride.ArrivalTime) {
		return nil, fmt.Errorf("%w: departure must be before arrival", apperrors.ErrValidation)
	}

	now := time.Now()
	ride.RideID = uuid.New()
	ride.AvailableSeats = ride.TotalSeats
	ride.Status = models.RideStatusActive
	ride.CreatedAt = now
	ride.UpdatedAt = now

	if err := uc.ridesRepo.CreateRide(ctx, ride); err != nil {
		logger.Error("Failed to create ride",
			logger.String("driver_id", ride.DriverID.String()),
			logger.Err(err))
		return nil, err
	}

	logger.Info("Ride created",
		logger.String("ride_id", ride.RideID.String()),
		logger.String("origin", ride.Origin.City),
		logger.String("destination", ride.Destination.City),
		logger.Int("total_seats", ride.TotalSeats))

	return ride, nil
}

// GetRide retrieves a single ride by ID
func (uc *rideUC) GetRide(ctx context.Context, rideID string) (*models.Ride, error) {
	id, err := uuid.Parse(rideID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ride id", apperrors.ErrValidation)
	}

	return uc.ridesRepo.GetRide(ctx, id)
}

// UpdateRide applies non-seat field changes and returns the updated ride.
// Seat counters are not updatable here; they belong to the inventory manager.
func (uc *rideUC) UpdateRide(ctx context.Context, rideID string, update models.RideUpdate) (*models.Ride, error) {
	id, err := uuid.Parse(rideID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ride id", apperrors.ErrValidation)
	}
	if update.PricePerSeat != nil && *update.PricePerSeat < 0 {
		return nil, fmt.Errorf("%w: price per seat must not be negative", apperrors.ErrValidation)
	}

	if err := uc.ridesRepo.UpdateRide(ctx, id, update); err != nil {
		return nil, err
	}

	return uc.ridesRepo.GetRide(ctx, id)
}
