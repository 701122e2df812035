package rides

import (
	"context"

	"github.com/numpang/numpang/internal/pkg/models"
)

// RideUC defines the interface for ride catalog and search business logic
//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/numpang/numpang/services/rides RideUC
type RideUC interface {
	CreateRide(ctx context.Context, ride *models.Ride) (*models.Ride, error)
	GetRide(ctx context.Context, rideID string) (*models.Ride, error)
	UpdateRide(ctx context.Context, rideID string, update models.RideUpdate) (*models.Ride, error)
	Search(ctx context.Context, req models.SearchRequest) ([]models.Ride, error)
	ListFilters() []models.Filter
}
