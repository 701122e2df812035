package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/models"
	nrpkg "github.com/numpang/numpang/internal/pkg/newrelic"
	"github.com/numpang/numpang/internal/utils"
)

const searchDateLayout = "2006-01-02"

// SearchRides handles ride searches over the catalog.
// Query parameters: origin, destination and date (YYYY-MM-DD) are
// required; filters is an optional comma separated list of filter IDs.
func (h *RidesHandler) SearchRides(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Rides.SearchRides")

	req := models.SearchRequest{
		OriginCity: c.QueryParam("origin"),
		DestCity:   c.QueryParam("destination"),
	}
	if req.OriginCity == "" || req.DestCity == "" {
		return utils.BadRequestResponse(c, "Origin and destination are required")
	}

	dateParam := c.QueryParam("date")
	if dateParam == "" {
		return utils.BadRequestResponse(c, "Date is required")
	}
	date, err := time.Parse(searchDateLayout, dateParam)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid date, expected YYYY-MM-DD")
	}
	req.Date = date

	if filtersParam := c.QueryParam("filters"); filtersParam != "" {
		for _, id := range strings.Split(filtersParam, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.FilterIDs = append(req.FilterIDs, id)
			}
		}
	}

	nrpkg.AddTransactionAttribute(txn, "search.origin", req.OriginCity)
	nrpkg.AddTransactionAttribute(txn, "search.destination", req.DestCity)

	results, err := h.rideUC.Search(c.Request().Context(), req)
	if err != nil {
		logger.Error("Ride search failed",
			logger.String("origin", req.OriginCity),
			logger.String("destination", req.DestCity),
			logger.ErrorField(err))
		nrpkg.NoticeTransactionError(txn, err)
		return utils.InternalServerErrorResponse(c, "Failed to search rides")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Rides retrieved successfully", results)
}
