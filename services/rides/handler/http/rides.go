package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/numpang/numpang/internal/pkg/apperrors"
	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/models"
	nrpkg "github.com/numpang/numpang/internal/pkg/newrelic"
	"github.com/numpang/numpang/internal/utils"
	"github.com/numpang/numpang/services/rides"
)

// RidesHandler handles HTTP requests for ride catalog operations
type RidesHandler struct {
	rideUC rides.RideUC
}

// NewRidesHandler creates a new ride HTTP handler
func NewRidesHandler(rideUC rides.RideUC) *RidesHandler {
	return &RidesHandler{
		rideUC: rideUC,
	}
}

// CreateRide handles ride publication by a driver
func (h *RidesHandler) CreateRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.CreateRide")

	var ride models.Ride
	if err := c.Bind(&ride); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	created, err := h.rideUC.CreateRide(c.Request().Context(), &ride)
	if err != nil {
		logger.Warn("Failed to create ride",
			logger.String("driver_id", ride.DriverID.String()),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return rideErrorResponse(c, err)
	}

	logger.Info("Ride published",
		logger.String("ride_id", created.RideID.String()),
		logger.String("origin", created.Origin.City),
		logger.String("destination", created.Destination.City),
		logger.Int("total_seats", created.TotalSeats))

	return utils.SuccessResponse(c, http.StatusCreated, "Ride created successfully", created)
}

// GetRide handles ride retrieval
func (h *RidesHandler) GetRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.GetRide")

	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}
	nrpkg.AddTransactionAttribute(txn, "ride.id", rideID)

	ride, err := h.rideUC.GetRide(c.Request().Context(), rideID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride retrieved successfully", ride)
}

// UpdateRide handles updates to a ride's mutable fields
func (h *RidesHandler) UpdateRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.UpdateRide")

	rideID := c.Param("rideID")
	if rideID == "" {
		return utils.BadRequestResponse(c, "Ride ID is required")
	}
	nrpkg.AddTransactionAttribute(txn, "ride.id", rideID)

	var update models.RideUpdate
	if err := c.Bind(&update); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	ride, err := h.rideUC.UpdateRide(c.Request().Context(), rideID, update)
	if err != nil {
		logger.Warn("Failed to update ride",
			logger.String("ride_id", rideID),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return rideErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Ride updated successfully", ride)
}

// ListFilters returns the search filters the catalog understands
func (h *RidesHandler) ListFilters(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.ListFilters")

	return utils.SuccessResponse(c, http.StatusOK, "Filters retrieved successfully", h.rideUC.ListFilters())
}

// rideErrorResponse maps domain errors to HTTP status codes
func rideErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrRideNotFound):
		return utils.NotFoundResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c, err.Error())
	}
}
