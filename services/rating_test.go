package services

import (
	"testing"

	"redfin-finder/config"
	"redfin-finder/models"
)

func newTestRater() *Rater { return NewRater(config.DefaultProfile()) }

func TestScoreMixedListing(t *testing.T) {
	l := &models.Listing{
		Price:           550000,
		HOA:             0,
		Beds:            intPtr(2),
		Sqft:            intPtr(950),
		Parking:         "1 space",
		NetMonthlyCost:  floatPtr(2636.10),
		DriveDest1Min:   floatPtr(18.5),
		DriveDest2Min:   floatPtr(12),
		DriveTransitMin: floatPtr(4),
	}

	got := newTestRater().Score(l)
	if got.Total != 2.2 || got.Color != models.ColorYellow {
		t.Errorf("score: got %.2f %s, want 2.20 Yellow", got.Total, got.Color)
	}
	want := map[string]int{
		config.CatPrice: 1, config.CatPricePerBed: 2, config.CatHOA: 3,
		config.CatNetMonthlyCost: 2, config.CatCommuteDest1: 2, config.CatCommuteDest2: 3,
		config.CatTransitProximity: 3, config.CatInUnitLaundry: 2, config.CatParking: 3,
		config.CatSize: 3,
	}
	for cat, w := range want {
		if got.Categories[cat] != w {
			t.Errorf("%s: got %d, want %d", cat, got.Categories[cat], w)
		}
	}
}

func TestScoreExtremes(t *testing.T) {
	best := &models.Listing{
		Price: 300000, Beds: intPtr(2), Sqft: intPtr(1000),
		InUnitLaundry: boolPtr(true), Parking: "2 spaces",
		NetMonthlyCost: floatPtr(1500), DriveDest1Min: floatPtr(10),
		DriveDest2Min: floatPtr(10), DriveTransitMin: floatPtr(3),
	}
	worst := &models.Listing{
		Price: 700000, HOA: 500, Beds: intPtr(1), Sqft: intPtr(500),
		InUnitLaundry: boolPtr(false), Parking: "None",
		NetMonthlyCost: floatPtr(4000), DriveDest1Min: floatPtr(40),
		DriveDest2Min: floatPtr(30), DriveTransitMin: floatPtr(20),
	}

	r := newTestRater()
	if got := r.Score(best); got.Total != 3.0 || got.Color != models.ColorGreen {
		t.Errorf("best: got %.2f %s", got.Total, got.Color)
	}
	if got := r.Score(worst); got.Total != 1.0 || got.Color != models.ColorRed {
		t.Errorf("worst: got %.2f %s", got.Total, got.Color)
	}
}

func TestScoreUnknownsAreNeutral(t *testing.T) {
	l := &models.Listing{Price: 450000, HOA: 300, Parking: models.ParkingUnknown}
	got := newTestRater().Score(l)
	if got.Total != 2.0 {
		t.Errorf("all-neutral listing: got %.2f, want 2.00", got.Total)
	}
	for cat, s := range got.Categories {
		if s != 2 {
			t.Errorf("%s: got %d, want 2", cat, s)
		}
	}
}

func TestScoreBoundsAndColor(t *testing.T) {
	r := newTestRater()
	cut := config.DefaultProfile().Cutoffs
	for price := 100000; price <= 800000; price += 50000 {
		for _, beds := range []*int{nil, intPtr(1), intPtr(3)} {
			l := &models.Listing{Price: price, Beds: beds, Parking: "none listed", DriveDest1Min: floatPtr(float64(price) / 20000)}
			got := r.Score(l)
			if got.Total < 1 || got.Total > 3 {
				t.Fatalf("total out of range: %.2f", got.Total)
			}
			var want string
			switch {
			case got.Total >= cut.Green:
				want = models.ColorGreen
			case got.Total >= cut.Yellow:
				want = models.ColorYellow
			default:
				want = models.ColorRed
			}
			if got.Color != want {
				t.Errorf("total %.2f colored %s, want %s", got.Total, got.Color, want)
			}
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	l := &models.Listing{Price: 480000, HOA: 250, Beds: intPtr(2), DriveDest2Min: floatPtr(20)}
	r := newTestRater()
	a, b := r.Score(l), r.Score(l)
	if a.Total != b.Total || a.Color != b.Color {
		t.Errorf("scores differ: %+v vs %+v", a, b)
	}
}

func TestParkingDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want int
	}{
		{"Unknown", 2},
		{"", 2},
		{"none", 1},
		{"None Listed", 1},
		{"1 space", 3},
		{"0 spaces", 1},
		{"0", 1},
		{"10 spaces", 3},
		{"Garage", 3},
	}
	for _, tt := range tests {
		if got := boolScore(hasParking(tt.desc)); got != tt.want {
			t.Errorf("parking %q: got %d, want %d", tt.desc, got, tt.want)
		}
	}
}

func TestSizeScore(t *testing.T) {
	tests := []struct {
		name string
		sqft *int
		beds *int
		want int
	}{
		{"large", intPtr(900), intPtr(1), 3},
		{"two beds small area", intPtr(600), intPtr(2), 3},
		{"mid", intPtr(750), intPtr(1), 2},
		{"small", intPtr(500), nil, 1},
		{"zero area unknown", intPtr(0), nil, 2},
		{"negative area unknown", intPtr(-5), intPtr(1), 2},
		{"nothing known", nil, nil, 2},
	}
	for _, tt := range tests {
		if got := sizeScore(tt.sqft, tt.beds); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestApplyStoresRating(t *testing.T) {
	l := &models.Listing{Price: 450000, HOA: 300}
	rating := newTestRater().Apply(l)
	if l.Score == nil || *l.Score != rating.Total || l.Color != rating.Color {
		t.Errorf("Apply did not store the rating: %+v", l)
	}
	if _, ok := l.CategoryScores[config.CatPricePerBed]; !ok {
		t.Error("price_per_bed should be reported")
	}
}
