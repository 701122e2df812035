package rides

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/models"
)

// RideRepo defines the interface for ride catalog data access.
// Seat counters are not reachable through this interface; their mutation
// is segregated behind the seat inventory manager's SeatStore.
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/numpang/numpang/services/rides RideRepo
type RideRepo interface {
	CreateRide(ctx context.Context, ride *models.Ride) error
	GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error)
	UpdateRide(ctx context.Context, rideID uuid.UUID, update models.RideUpdate) error
	ListActive(ctx context.Context, asOf time.Time) ([]models.Ride, error)
	RetireExpired(ctx context.Context, asOf time.Time) (int64, error)
}
