package services

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

const (
	// DefaultBaseFee is the flat fee charged up to the base distance.
	DefaultBaseFee = 120.0
	// DefaultPerKmRate is charged for every kilometer beyond the base distance.
	DefaultPerKmRate = 10.0
	// DefaultBaseDistanceKm is the distance covered by the base fee alone.
	DefaultBaseDistanceKm = 1.0
)

// Tariff maps a delivery distance to a fee: a flat base fee up to the base
// distance, plus a per-km rate for every kilometer beyond it. The constants
// are configuration, loaded from the environment in cmd.
type Tariff struct {
	baseFee        float64
	perKmRate      float64
	baseDistanceKm float64
}

// NewTariff creates a tariff, validating that all components are
// non-negative.
func NewTariff(baseFee, perKmRate, baseDistanceKm float64) (Tariff, error) {
	if baseFee < 0 || perKmRate < 0 || baseDistanceKm < 0 {
		return Tariff{}, errs.NewValueIsInvalidErrorWithCause("tariff",
			fmt.Errorf("base=%.2f rate=%.2f threshold=%.2f must all be non-negative",
				baseFee, perKmRate, baseDistanceKm))
	}
	return Tariff{
		baseFee:        baseFee,
		perKmRate:      perKmRate,
		baseDistanceKm: baseDistanceKm,
	}, nil
}

// DefaultTariff returns the standard 120 + 10/km-beyond-1km tariff.
func DefaultTariff() Tariff {
	t, _ := NewTariff(DefaultBaseFee, DefaultPerKmRate, DefaultBaseDistanceKm)
	return t
}

// DeliveryFee computes the fee for a delivery distance, rounded to 2
// decimal places. Negative distances are invalid.
func (t Tariff) DeliveryFee(distanceKm float64) (float64, error) {
	if distanceKm < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("distance",
			fmt.Errorf("%.3f km is negative", distanceKm))
	}
	if distanceKm <= t.baseDistanceKm {
		return kernel.RoundMoney(t.baseFee), nil
	}
	fee := t.baseFee + (distanceKm-t.baseDistanceKm)*t.perKmRate
	return kernel.RoundMoney(fee), nil
}
