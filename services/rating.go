package services

import (
	"strconv"
	"strings"

	"redfin-finder/config"
	"redfin-finder/models"
)

// Rater scores listings against a validated profile. It holds no state
// beyond the profile and is safe to share.
type Rater struct {
	profile *config.Profile
}

// NewRater creates a Rater. The profile is assumed to have passed Validate.
func NewRater(profile *config.Profile) *Rater {
	return &Rater{profile: profile}
}

// Score computes the per-category scores, their weighted total and the
// resulting color. Missing inputs score a neutral 2.
func (r *Rater) Score(l *models.Listing) models.Rating {
	scores := make(map[string]int, len(config.ThresholdCategories)+3)

	price := float64(l.Price)
	scores[config.CatPrice] = r.lowerIsBetter(config.CatPrice, &price)

	var perBed *float64
	if l.Beds != nil && *l.Beds > 0 {
		v := float64(l.Price) / float64(*l.Beds)
		perBed = &v
	}
	scores[config.CatPricePerBed] = r.lowerIsBetter(config.CatPricePerBed, perBed)

	hoa := float64(l.HOA)
	scores[config.CatHOA] = r.lowerIsBetter(config.CatHOA, &hoa)
	scores[config.CatNetMonthlyCost] = r.lowerIsBetter(config.CatNetMonthlyCost, l.NetMonthlyCost)
	scores[config.CatCommuteDest1] = r.lowerIsBetter(config.CatCommuteDest1, l.DriveDest1Min)
	scores[config.CatCommuteDest2] = r.lowerIsBetter(config.CatCommuteDest2, l.DriveDest2Min)
	scores[config.CatTransitProximity] = r.lowerIsBetter(config.CatTransitProximity, l.DriveTransitMin)
	scores[config.CatInUnitLaundry] = boolScore(l.InUnitLaundry)
	scores[config.CatParking] = boolScore(hasParking(l.Parking))
	scores[config.CatSize] = sizeScore(l.Sqft, l.Beds)

	var total float64
	for _, cat := range config.WeightedCategories {
		s, ok := scores[cat]
		if !ok {
			s = 2
		}
		total += float64(s) * r.profile.Weights[cat]
	}
	total = round2(total)

	return models.Rating{Total: total, Color: r.color(total), Categories: scores}
}

// Apply scores l and stores the outcome on it.
func (r *Rater) Apply(l *models.Listing) models.Rating {
	rating := r.Score(l)
	total := rating.Total
	l.Score = &total
	l.Color = rating.Color
	l.CategoryScores = rating.Categories
	return rating
}

func (r *Rater) color(total float64) string {
	switch {
	case total >= r.profile.Cutoffs.Green:
		return models.ColorGreen
	case total >= r.profile.Cutoffs.Yellow:
		return models.ColorYellow
	default:
		return models.ColorRed
	}
}

func (r *Rater) lowerIsBetter(cat string, v *float64) int {
	if v == nil {
		return 2
	}
	th := r.profile.Thresholds[cat]
	switch {
	case *v <= th.Green:
		return 3
	case *v >= th.Red:
		return 1
	default:
		return 2
	}
}

func boolScore(v *bool) int {
	switch {
	case v == nil:
		return 2
	case *v:
		return 3
	default:
		return 1
	}
}

// hasParking reads the parking descriptor: "Unknown" or empty is unknown,
// "none", "none listed" or a leading count of zero is no parking, anything
// else is parking.
func hasParking(desc string) *bool {
	d := strings.ToLower(strings.TrimSpace(desc))
	var v bool
	switch d {
	case "", strings.ToLower(models.ParkingUnknown):
		return nil
	case "none", "none listed":
		v = false
	default:
		v = !zeroCount(d)
	}
	return &v
}

// zeroCount reports whether a descriptor such as "0 spaces" starts with 0.
func zeroCount(d string) bool {
	fields := strings.Fields(d)
	if len(fields) == 0 {
		return false
	}
	n, err := strconv.Atoi(fields[0])
	return err == nil && n == 0
}

func sizeScore(sqft, beds *int) int {
	area := 0
	if sqft != nil && *sqft > 0 {
		area = *sqft
	}
	switch {
	case area >= 900:
		return 3
	case beds != nil && *beds >= 2:
		return 3
	case area >= 700:
		return 2
	case area > 0:
		return 1
	default:
		return 2
	}
}
