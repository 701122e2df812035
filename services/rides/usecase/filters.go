package usecase

import (
	"github.com/numpang/numpang/internal/pkg/models"
)

// filterEntry pairs a UI filter descriptor with its predicate over a ride.
// Predicates are pure functions; filters compose by logical AND.
type filterEntry struct {
	descriptor models.Filter
	predicate  func(models.Ride) bool
}

var filterRegistry = []filterEntry{
	{
		descriptor: models.Filter{ID: "women_only", Label: "Women only", Icon: "female"},
		predicate:  func(r models.Ride) bool { return r.WomenOnly },
	},
	{
		descriptor: models.Filter{ID: "instant_booking", Label: "Instant booking", Icon: "flash"},
		predicate:  func(r models.Ride) bool { return r.InstantBooking },
	},
	{
		descriptor: models.Filter{ID: "ac", Label: "Air conditioning", Icon: "snow"},
		predicate:  func(r models.Ride) bool { return r.Car.HasAC },
	},
	{
		descriptor: models.Filter{ID: "seats_2", Label: "2+ seats left", Icon: "people"},
		predicate:  func(r models.Ride) bool { return r.AvailableSeats >= 2 },
	},
	{
		descriptor: models.Filter{ID: "seats_3", Label: "3+ seats left", Icon: "people"},
		predicate:  func(r models.Ride) bool { return r.AvailableSeats >= 3 },
	},
}

// ListFilters exposes the available filter descriptors for UI selection
func (uc *rideUC) ListFilters() []models.Filter {
	filters := make([]models.Filter, 0, len(filterRegistry))
	for _, entry := range filterRegistry {
		filters = append(filters, entry.descriptor)
	}
	return filters
}

// predicatesFor maps filter IDs to predicates, ignoring unknown IDs.
// Filter descriptors drive UI selection, so an unknown ID is stale client
// state rather than a validation failure.
func predicatesFor(filterIDs []string) []func(models.Ride) bool {
	var predicates []func(models.Ride) bool
	for _, id := range filterIDs {
		for _, entry := range filterRegistry {
			if entry.descriptor.ID == id {
				predicates = append(predicates, entry.predicate)
				break
			}
		}
	}
	return predicates
}
