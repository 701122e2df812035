package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/numpang/numpang/internal/pkg/geo"
	"github.com/numpang/numpang/internal/pkg/logger"
	"github.com/numpang/numpang/internal/pkg/models"
	nrpkg "github.com/numpang/numpang/internal/pkg/newrelic"
	"github.com/numpang/numpang/internal/utils"
)

// endpointMatcher decides whether a ride endpoint matches one side of a
// search. When the searched city resolves to coordinates the match is a
// geohash cell prefilter followed by a haversine radius check; otherwise
// it degrades to case-insensitive string equality on the city name.
type endpointMatcher struct {
	city     string
	resolved bool
	center   geo.Coordinate
	cells    map[string]struct{}
	radiusKm float64
}

func newEndpointMatcher(city string, radiusKm float64) endpointMatcher {
	m := endpointMatcher{city: city, radiusKm: radiusKm}
	if coord, ok := geo.Resolve(city); ok {
		m.resolved = true
		m.center = coord
		m.cells = geo.CellWithNeighbors(coord)
	}
	return m
}

func (m endpointMatcher) matches(point models.RoutePoint) bool {
	// Rides published without coordinates fall back to string matching
	hasCoords := point.Latitude != 0 || point.Longitude != 0
	if m.resolved && hasCoords {
		cell := geo.CellOfPoint(point.Latitude, point.Longitude)
		if _, ok := m.cells[cell]; !ok {
			return false
		}
		distance := utils.CalculateDistance(
			utils.GeoPoint{Latitude: m.center.Latitude, Longitude: m.center.Longitude},
			utils.GeoPoint{Latitude: point.Latitude, Longitude: point.Longitude},
		)
		return distance <= m.radiusKm
	}

	return strings.EqualFold(strings.TrimSpace(point.City), strings.TrimSpace(m.city))
}

// Search returns active rides matching origin, destination, date and
// filters, ordered by departure time, then price, then ride ID.
// A search with no matches returns an empty slice, not an error.
func (uc *rideUC) Search(ctx context.Context, req models.SearchRequest) ([]models.Ride, error) {
	txn := nrpkg.FromContext(ctx)
	segment := nrpkg.StartSegment(txn, "Rides.Search")
	if segment != nil {
		defer segment.End()
	}

	candidates, err := uc.ridesRepo.ListActive(ctx, time.Now())
	if err != nil {
		logger.Error("Failed to list active rides for search", logger.Err(err))
		return nil, err
	}

	origin := newEndpointMatcher(req.OriginCity, uc.cfg.Search.RadiusKm)
	destination := newEndpointMatcher(req.DestCity, uc.cfg.Search.RadiusKm)
	predicates := predicatesFor(req.FilterIDs)

	matched := make([]models.Ride, 0, len(candidates))
	for _, ride := range candidates {
		if !sameDay(ride.DepartureTime, req.Date) {
			continue
		}
		if !origin.matches(ride.Origin) || !destination.matches(ride.Destination) {
			continue
		}
		if !allMatch(ride, predicates) {
			continue
		}
		matched = append(matched, ride)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].DepartureTime.Equal(matched[j].DepartureTime) {
			return matched[i].DepartureTime.Before(matched[j].DepartureTime)
		}
		if matched[i].PricePerSeat != matched[j].PricePerSeat {
			return matched[i].PricePerSeat < matched[j].PricePerSeat
		}
		return matched[i].RideID.String() < matched[j].RideID.String()
	})

	return matched, nil
}

func allMatch(ride models.Ride, predicates []func(models.Ride) bool) bool {
	for _, predicate := range predicates {
		if !predicate(ride) {
			return false
		}
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
