package config

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Rating categories.
const (
	CatPrice            = "price"
	CatPricePerBed      = "price_per_bed"
	CatHOA              = "hoa"
	CatNetMonthlyCost   = "net_monthly_cost"
	CatCommuteDest1     = "commute_dest1"
	CatCommuteDest2     = "commute_dest2"
	CatTransitProximity = "transit_proximity"
	CatInUnitLaundry    = "in_unit_laundry"
	CatParking          = "parking"
	CatSize             = "size"
)

// WeightedCategories are the nine categories folded into the total score.
var WeightedCategories = []string{
	CatPrice, CatHOA, CatNetMonthlyCost, CatCommuteDest1, CatCommuteDest2,
	CatTransitProximity, CatInUnitLaundry, CatParking, CatSize,
}

// ThresholdCategories are the lower-is-better metrics that need a threshold pair.
var ThresholdCategories = []string{
	CatPrice, CatPricePerBed, CatHOA, CatNetMonthlyCost,
	CatCommuteDest1, CatCommuteDest2, CatTransitProximity,
}

// Threshold is a (green ceiling, red floor) pair for a lower-is-better metric.
type Threshold struct {
	Green float64 `yaml:"green" validate:"gte=0"`
	Red   float64 `yaml:"red" validate:"gtefield=Green"`
}

// Cutoffs map the weighted total onto a color.
type Cutoffs struct {
	Green  float64 `yaml:"green" validate:"gtefield=Yellow,lte=3"`
	Yellow float64 `yaml:"yellow" validate:"gte=1"`
}

// Assumptions drive the net monthly cost model.
type Assumptions struct {
	InterestRate     float64 `yaml:"interest_rate" validate:"gte=0,lt=1"`
	DownPaymentPct   float64 `yaml:"down_payment_pct" validate:"gte=0,lte=1"`
	LoanTermYears    int     `yaml:"loan_term_years" validate:"gt=0"`
	PropertyTaxRate  float64 `yaml:"property_tax_rate" validate:"gte=0,lt=1"`
	InsuranceMonthly float64 `yaml:"insurance_monthly" validate:"gte=0"`
	UtilitiesMonthly float64 `yaml:"utilities_monthly" validate:"gte=0"`
	InternetMonthly  float64 `yaml:"internet_monthly" validate:"gte=0"`
}

// FilterLimits bound which listings reach enrichment.
type FilterLimits struct {
	MaxPrice      int `yaml:"max_price" validate:"gt=0"`
	MaxHOAMonthly int `yaml:"max_hoa_monthly" validate:"gte=0"`
}

// Profile is the full assumption set for filtering, rating and cost estimation.
type Profile struct {
	Filters     FilterLimits         `yaml:"filters"`
	Weights     map[string]float64   `yaml:"weights" validate:"required,dive,gte=0,lte=1"`
	Thresholds  map[string]Threshold `yaml:"thresholds" validate:"required,dive"`
	Cutoffs     Cutoffs              `yaml:"cutoffs"`
	Assumptions Assumptions          `yaml:"assumptions"`
}

// DefaultProfile returns the compiled-in assumption set.
func DefaultProfile() *Profile {
	return &Profile{
		Filters: FilterLimits{MaxPrice: 600_000, MaxHOAMonthly: 500},
		Weights: map[string]float64{
			CatPrice:            0.20,
			CatHOA:              0.10,
			CatNetMonthlyCost:   0.20,
			CatCommuteDest1:     0.15,
			CatCommuteDest2:     0.10,
			CatTransitProximity: 0.10,
			CatInUnitLaundry:    0.05,
			CatParking:          0.05,
			CatSize:             0.05,
		},
		Thresholds: map[string]Threshold{
			CatPrice:            {Green: 400_000, Red: 500_000},
			CatPricePerBed:      {Green: 200_000, Red: 300_000},
			CatHOA:              {Green: 200, Red: 400},
			CatNetMonthlyCost:   {Green: 2_000, Red: 3_000},
			CatCommuteDest1:     {Green: 15, Red: 30},
			CatCommuteDest2:     {Green: 15, Red: 25},
			CatTransitProximity: {Green: 5, Red: 15},
		},
		Cutoffs: Cutoffs{Green: 2.3, Yellow: 1.7},
		Assumptions: Assumptions{
			InterestRate:     0.065,
			DownPaymentPct:   0.20,
			LoanTermYears:    30,
			PropertyTaxRate:  0.012,
			InsuranceMonthly: 150,
			UtilitiesMonthly: 250,
			InternetMonthly:  60,
		},
	}
}

// LoadProfile returns the default profile overlaid with the YAML file at path.
// An empty path yields the defaults. Map entries in the file replace the
// matching defaults one by one.
func LoadProfile(path string) (*Profile, error) {
	p := DefaultProfile()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read profile %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("config: parse profile %q: %w", path, err)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks field ranges and the shape of the weight and threshold tables.
func (p *Profile) Validate() error {
	var errs []string

	if err := validator.New().Struct(p); err != nil {
		errs = append(errs, err.Error())
	}

	if len(p.Weights) != len(WeightedCategories) {
		errs = append(errs, fmt.Sprintf("weights must have exactly %d entries, got %d",
			len(WeightedCategories), len(p.Weights)))
	}
	var sum float64
	for _, cat := range WeightedCategories {
		w, ok := p.Weights[cat]
		if !ok {
			errs = append(errs, fmt.Sprintf("weights.%s is required", cat))
			continue
		}
		sum += w
	}
	for _, cat := range sortedKeys(p.Weights) {
		if !contains(WeightedCategories, cat) {
			errs = append(errs, fmt.Sprintf("weights.%s is not a rating category", cat))
		}
	}
	if math.Abs(sum-1.0) > 1e-9 {
		errs = append(errs, fmt.Sprintf("weights must sum to 1.0, got %.4f", sum))
	}

	for _, cat := range ThresholdCategories {
		if _, ok := p.Thresholds[cat]; !ok {
			errs = append(errs, fmt.Sprintf("thresholds.%s is required", cat))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
