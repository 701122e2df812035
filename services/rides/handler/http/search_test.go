package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/numpang/numpang/internal/pkg/models"
	"github.com/numpang/numpang/services/rides/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchContext(e *echo.Echo, query url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/rides/search?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSearchRides_ParsesQueryParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockRideUC(ctrl)
	mockUC.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, req models.SearchRequest) ([]models.Ride, error) {
			assert.Equal(t, "Jakarta", req.OriginCity)
			assert.Equal(t, "Bandung", req.DestCity)
			assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), req.Date)
			assert.Equal(t, []string{"women_only", "ac"}, req.FilterIDs)
			return []models.Ride{}, nil
		})

	handler := NewRidesHandler(mockUC)

	e := echo.New()
	query := url.Values{}
	query.Set("origin", "Jakarta")
	query.Set("destination", "Bandung")
	query.Set("date", "2026-03-14")
	query.Set("filters", "women_only, ac")
	c, rec := searchContext(e, query)

	err := handler.SearchRides(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchRides_MissingEndpoints(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewRidesHandler(mocks.NewMockRideUC(ctrl))

	e := echo.New()
	query := url.Values{}
	query.Set("origin", "Jakarta")
	c, rec := searchContext(e, query)

	err := handler.SearchRides(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRides_MissingDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewRidesHandler(mocks.NewMockRideUC(ctrl))

	e := echo.New()
	query := url.Values{}
	query.Set("origin", "Jakarta")
	query.Set("destination", "Bandung")
	c, rec := searchContext(e, query)

	err := handler.SearchRides(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRides_InvalidDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewRidesHandler(mocks.NewMockRideUC(ctrl))

	e := echo.New()
	query := url.Values{}
	query.Set("origin", "Jakarta")
	query.Set("destination", "Bandung")
	query.Set("date", "14-03-2026")
	c, rec := searchContext(e, query)

	err := handler.SearchRides(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchRides_SearchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockRideUC(ctrl)
	mockUC.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	handler := NewRidesHandler(mockUC)

	e := echo.New()
	query := url.Values{}
	query.Set("origin", "Jakarta")
	query.Set("destination", "Bandung")
	query.Set("date", "2026-03-14")
	c, rec := searchContext(e, query)

	err := handler.SearchRides(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListFilters_ReturnsDescriptors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockRideUC(ctrl)
	mockUC.EXPECT().ListFilters().Return([]models.Filter{
		{ID: "women_only", Label: "Women only", Icon: "female"},
	})

	handler := NewRidesHandler(mockUC)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rides/filters", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.ListFilters(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
