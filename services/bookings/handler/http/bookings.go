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
	"github.com/numpang/numpang/services/bookings"
)

// BookingsHandler handles HTTP requests for booking operations
type BookingsHandler struct {
	bookingUC bookings.BookingUC
}

// NewBookingsHandler creates a new booking HTTP handler
func NewBookingsHandler(bookingUC bookings.BookingUC) *BookingsHandler {
	return &BookingsHandler{
		bookingUC: bookingUC,
	}
}

// RequestBooking handles seat reservation requests
func (h *BookingsHandler) RequestBooking(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Bookings.RequestBooking")

	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	nrpkg.AddTransactionAttribute(txn, "ride.id", req.RideID)
	nrpkg.AddTransactionAttribute(txn, "booking.seats", req.Seats)

	booking, err := h.bookingUC.RequestBooking(c.Request().Context(), req)
	if err != nil {
		logger.Warn("Failed to request booking",
			logger.String("ride_id", req.RideID),
			logger.Int("seats", req.Seats),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return bookingErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Booking requested successfully", booking)
}

// ConfirmBooking handles booking confirmation
func (h *BookingsHandler) ConfirmBooking(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Bookings.ConfirmBooking")

	bookingID := c.Param("bookingID")
	if bookingID == "" {
		return utils.BadRequestResponse(c, "Booking ID is required")
	}
	nrpkg.AddTransactionAttribute(txn, "booking.id", bookingID)

	booking, err := h.bookingUC.ConfirmBooking(c.Request().Context(), bookingID)
	if err != nil {
		logger.Warn("Failed to confirm booking",
			logger.String("booking_id", bookingID),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return bookingErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Booking confirmed successfully", booking)
}

// CancelBooking handles booking cancellation
func (h *BookingsHandler) CancelBooking(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Bookings.CancelBooking")

	bookingID := c.Param("bookingID")
	if bookingID == "" {
		return utils.BadRequestResponse(c, "Booking ID is required")
	}
	nrpkg.AddTransactionAttribute(txn, "booking.id", bookingID)

	booking, err := h.bookingUC.CancelBooking(c.Request().Context(), bookingID)
	if err != nil {
		logger.Warn("Failed to cancel booking",
			logger.String("booking_id", bookingID),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return bookingErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Booking cancelled successfully", booking)
}

// GetBooking handles booking retrieval
func (h *BookingsHandler) GetBooking(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Bookings.GetBooking")

	bookingID := c.Param("bookingID")
	if bookingID == "" {
		return utils.BadRequestResponse(c, "Booking ID is required")
	}

	booking, err := h.bookingUC.GetBooking(c.Request().Context(), bookingID)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return bookingErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Booking retrieved successfully", booking)
}

// bookingErrorResponse maps domain errors to HTTP status codes
func bookingErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrRideNotFound), errors.Is(err, apperrors.ErrBookingNotFound):
		return utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrInsufficientSeats):
		return utils.ConflictResponse(c, err.Error())
	case errors.Is(err, apperrors.ErrBookingExpired), errors.Is(err, apperrors.ErrHoldExpired), errors.Is(err, apperrors.ErrTokenConsumed):
		return utils.GoneResponse(c, err.Error())
	default:
		return utils.InternalServerErrorResponse(c, err.Error())
	}
}
