package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/numpang/numpang/internal/pkg/apperrors"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/rides/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *models.Config {
	return &models.Config{
		Search: models.SearchConfig{RadiusKm: 25},
	}
}

func validRide() *models.Ride {
	departure := time.Now().Add(24 * time.Hour)
	return &models.Ride{
		DriverID: uuid.New(),
		Car:      models.Car{Model: "Avanza", Color: "Silver", Plate: "B 1234 XYZ", HasAC: true},
		Origin: models.RoutePoint{
			City: "Jakarta", Address: "Stasiun Gambir",
			Latitude: -6.1774, Longitude: 106.8306,
		},
		Destination: models.RoutePoint{
			City: "Bandung", Address: "Stasiun Bandung",
			Latitude: -6.9147, Longitude: 107.6098,
		},
		DepartureTime: departure,
		ArrivalTime:   departure.Add(3 * time.Hour),
		PricePerSeat:  150000,
		TotalSeats:    4,
	}
}

func TestCreateRide_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRideRepo(ctrl)
	mockRepo.EXPECT().CreateRide(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ride *models.Ride) error {
			assert.NotEqual(t, uuid.Nil, ride.RideID)
			assert.Equal(t, ride.TotalSeats, ride.AvailableSeats)
			assert.Equal(t, models.RideStatusActive, ride.Status)
			return nil
		})

	uc := NewRideUC(testConfig(), mockRepo)

	created, err := uc.CreateRide(context.Background(), validRide())
	require.NoError(t, err)
	assert.Equal(t, 4, created.AvailableSeats)
}

func TestCreateRide_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Ride)
	}{
		{"zero seats", func(r *models.Ride) { r.TotalSeats = 0 }},
		{"negative price", func(r *models.Ride) { r.PricePerSeat = -1 }},
		{"missing origin city", func(r *models.Ride) { r.Origin.City = "" }},
		{"missing destination city", func(r *models.Ride) { r.Destination.City = "" }},
		{"arrival before departure", func(r *models.Ride) { r.ArrivalTime = r.DepartureTime.Add(-time.Hour) }},
		{"arrival equals departure", func(r *models.Ride) { r.ArrivalTime = r.DepartureTime }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc := NewRideUC(testConfig(), mocks.NewMockRideRepo(ctrl))

			ride := validRide()
			tt.mutate(ride)

			_, err := uc.CreateRide(context.Background(), ride)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestGetRide_InvalidID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewRideUC(testConfig(), mocks.NewMockRideRepo(ctrl))

	_, err := uc.GetRide(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetRide_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRideRepo(ctrl)
	rideID := uuid.New()
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(nil, apperrors.ErrRideNotFound)

	uc := NewRideUC(testConfig(), mockRepo)

	_, err := uc.GetRide(context.Background(), rideID.String())
	assert.ErrorIs(t, err, apperrors.ErrRideNotFound)
}

func TestUpdateRide_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRideRepo(ctrl)
	rideID := uuid.New()
	newPrice := 175000
	update := models.RideUpdate{PricePerSeat: &newPrice}

	updated := validRide()
	updated.RideID = rideID
	updated.PricePerSeat = newPrice

	mockRepo.EXPECT().UpdateRide(gomock.Any(), rideID, update).Return(nil)
	mockRepo.EXPECT().GetRide(gomock.Any(), rideID).Return(updated, nil)

	uc := NewRideUC(testConfig(), mockRepo)

	ride, err := uc.UpdateRide(context.Background(), rideID.String(), update)
	require.NoError(t, err)
	assert.Equal(t, newPrice, ride.PricePerSeat)
}

func TestUpdateRide_NegativePrice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewRideUC(testConfig(), mocks.NewMockRideRepo(ctrl))

	badPrice := -100
	_, err := uc.UpdateRide(context.Background(), uuid.New().String(), models.RideUpdate{PricePerSeat: &badPrice})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestListFilters_DescriptorsAreStable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewRideUC(testConfig(), mocks.NewMockRideRepo(ctrl))

	filters := uc.ListFilters()
	require.Len(t, filters, 5)

	ids := make([]string, 0, len(filters))
	for _, f := range filters {
		ids = append(ids, f.ID)
		assert.NotEmpty(t, f.Label)
		assert.NotEmpty(t, f.Icon)
	}
	assert.Equal(t, []string{"women_only", "instant_booking", "ac", "seats_2", "seats_3"}, ids)
}
