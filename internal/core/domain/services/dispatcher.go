package services

import (
	"errors"
	"sort"

	"fooddelivery/internal/core/domain/model/courier"
	"fooddelivery/internal/core/domain/model/kernel"
)

// ErrNoCandidates is returned when ranking is asked to choose from an empty
// or fully ineligible courier set.
var ErrNoCandidates = errors.New("no dispatch candidates")

// Candidate is a ranked courier with its computed pickup distance.
type Candidate struct {
	Courier    *courier.Courier
	DistanceKm float64
}

// Dispatcher ranks eligible couriers for a pickup point. It is pure: the
// atomic claim of a ranked candidate happens in the application layer via
// the repository's compare-and-set.
type Dispatcher struct{}

func NewDispatcher() Dispatcher {
	return Dispatcher{}
}

// RankCandidates filters the given couriers down to eligible ones with a
// known location and sorts them by:
//  1. distance to pickup, ascending
//  2. cumulative deliveries, ascending (load balancing)
//  3. courier id, ascending (determinism)
//
// Couriers that are ineligible or have never reported a location are
// skipped, not errors. ErrNoCandidates is returned when nothing survives
// the filter.
func (d Dispatcher) RankCandidates(
	pickup kernel.GeoPoint,
	couriers []*courier.Courier,
) ([]Candidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsEligible() || c.Location() == nil {
			continue
		}

		distance, err := pickup.DistanceKm(*c.Location())
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, Candidate{Courier: c, DistanceKm: distance})
	}

	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		if a.Courier.TotalDeliveries() != b.Courier.TotalDeliveries() {
			return a.Courier.TotalDeliveries() < b.Courier.TotalDeliveries()
		}
		return a.Courier.ID().String() < b.Courier.ID().String()
	})

	return candidates, nil
}
