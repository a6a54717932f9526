package services

import (
	"redfin-finder/config"
	"redfin-finder/utils"
)

const (
	roomShareMarkup    = 1.05
	sharedRoomDiscount = 0.65
)

// RentalEstimator computes the monthly income expected from renting the
// spare bedrooms of a unit while the owner occupies one.
type RentalEstimator struct {
	fallbackRents map[string]int
	logger        *utils.Logger
}

// NewRentalEstimator creates an estimator using the per-town median rents.
func NewRentalEstimator(fallbackRents map[string]int, logger *utils.Logger) *RentalEstimator {
	return &RentalEstimator{fallbackRents: fallbackRents, logger: logger}
}

// Offset returns the expected monthly roommate income. Units with fewer
// than two bedrooms yield 0.
func (e *RentalEstimator) Offset(town string, estimate *int, beds *int) int {
	if beds == nil || *beds < 2 {
		return 0
	}
	if estimate != nil && *estimate > 0 {
		perRoom := *estimate / *beds
		return int(float64(perRoom) * roomShareMarkup)
	}
	if rent, ok := e.fallbackRents[town]; ok && town != "" {
		return int(float64(rent) * sharedRoomDiscount)
	}
	e.logger.Warn("[rental] No rental data for town=%q, using metro average", town)
	return int(float64(config.MetroFallbackRent) * sharedRoomDiscount)
}
