package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/bookings"
	httpHandler "github.com/numpang/numpang/services/bookings/handler/http"
)

// Handler combines all handlers for the bookings service
type Handler struct {
	bookingsHTTP *httpHandler.BookingsHandler
	cfg          *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	bookingUC bookings.BookingUC,
	cfg *models.Config,
) *Handler {
	return &Handler{
		bookingsHTTP: httpHandler.NewBookingsHandler(bookingUC),
		cfg:          cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	bookingsGroup := e.Group("/bookings")
	bookingsGroup.POST("", h.bookingsHTTP.RequestBooking)
	bookingsGroup.GET("/:bookingID", h.bookingsHTTP.GetBooking)
	bookingsGroup.POST("/:bookingID/confirm", h.bookingsHTTP.ConfirmBooking)
	bookingsGroup.POST("/:bookingID/cancel", h.bookingsHTTP.CancelBooking)
}
