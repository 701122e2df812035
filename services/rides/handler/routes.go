package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/rides"
	httpHandler "github.com/numpang/numpang/services/rides/handler/http"
)

// Handler combines all handlers for the rides service
type Handler struct {
	ridesHTTP *httpHandler.RidesHandler
	cfg       *models.Config
}

// NewHandler creates a new combined handler
func NewHandler(
	rideUC rides.RideUC,
	cfg *models.Config,
) *Handler {
	return &Handler{
		ridesHTTP: httpHandler.NewRidesHandler(rideUC),
		cfg:       cfg,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	ridesGroup := e.Group("/rides")
	ridesGroup.POST("", h.ridesHTTP.CreateRide)
	// Static routes before the :rideID wildcard
	ridesGroup.GET("/search", h.ridesHTTP.SearchRides)
	ridesGroup.GET("/filters", h.ridesHTTP.ListFilters)
	ridesGroup.GET("/:rideID", h.ridesHTTP.GetRide)
	ridesGroup.PUT("/:rideID", h.ridesHTTP.UpdateRide)
}
