package models

import "time"

// Rating colors.
const (
	ColorGreen  = "Green"
	ColorYellow = "Yellow"
	ColorRed    = "Red"
)

// Sentinels for the nearest-transit field.
const (
	TransitUnknown = "Unknown"
	TransitError   = "Error"
)

// ParkingUnknown is the parking descriptor used when the source has none.
const ParkingUnknown = "Unknown"

// ParkingNone is the parking descriptor for a listing reporting zero spaces.
const ParkingNone = "None"

// RawListing is a provider-neutral record as decoded from the source.
// Every field may be missing; records without an ID are dropped by the cleaner.
type RawListing struct {
	ID            string
	Address       string
	URL           string
	Town          string
	Price         *int
	HOA           *int
	Beds          *int
	Baths         *float64
	Sqft          *int
	InUnitLaundry *bool
	Parking       string
	RentEstimate  *int
	Latitude      *float64
	Longitude     *float64
}

// Listing is one tracked unit as kept in the listing store. Pointer fields
// that are nil have not been computed yet.
type Listing struct {
	ID            string   `json:"id"`
	Address       string   `json:"address"`
	URL           string   `json:"url,omitempty"`
	Town          *string  `json:"town,omitempty"`
	Price         int      `json:"price"`
	HOA           int      `json:"hoa"`
	Beds          *int     `json:"beds,omitempty"`
	Baths         *float64 `json:"baths,omitempty"`
	Sqft          *int     `json:"sqft,omitempty"`
	InUnitLaundry *bool    `json:"in_unit_laundry,omitempty"`
	Parking       string   `json:"parking"`
	RentEstimate  *int     `json:"rent_estimate,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`

	NearestTransit  string   `json:"nearest_transit,omitempty"`
	DriveTransitMin *float64 `json:"drive_transit_min,omitempty"`
	DriveDest1Min   *float64 `json:"drive_dest1_min,omitempty"`
	DriveDest2Min   *float64 `json:"drive_dest2_min,omitempty"`

	RentalOffset   *int     `json:"rental_offset,omitempty"`
	NetMonthlyCost *float64 `json:"net_monthly_cost,omitempty"`

	Score          *float64       `json:"rating_score,omitempty"`
	Color          string         `json:"rating_color,omitempty"`
	CategoryScores map[string]int `json:"category_scores,omitempty"`

	FirstSeen time.Time `json:"first_seen"`
}

// TownName returns the resolved town or "".
func (l *Listing) TownName() string {
	if l.Town == nil {
		return ""
	}
	return *l.Town
}

// ScoreValue returns the rating score, or 0 when unrated.
func (l *Listing) ScoreValue() float64 {
	if l.Score == nil {
		return 0
	}
	return *l.Score
}

// Enrichment carries the travel-time fields computed for one listing.
type Enrichment struct {
	NearestTransit  string
	DriveTransitMin *float64
	DriveDest1Min   *float64
	DriveDest2Min   *float64
}

// Apply copies the enrichment onto l.
func (e Enrichment) Apply(l *Listing) {
	l.NearestTransit = e.NearestTransit
	l.DriveTransitMin = e.DriveTransitMin
	l.DriveDest1Min = e.DriveDest1Min
	l.DriveDest2Min = e.DriveDest2Min
}

// Rating is the outcome of scoring a listing.
type Rating struct {
	Total      float64
	Color      string
	Categories map[string]int
}

// RunSummary holds the figures reported at the end of a pipeline run.
type RunSummary struct {
	TotalListings  int
	NewListings    int
	Pruned         int
	Green          int
	Yellow         int
	Red            int
	Unrated        int
	AverageScore   float64
	TopRated       []*Listing
	ListingsByTown map[string]int
}

// FetchResult is what a listing source returns for one run.
type FetchResult struct {
	// New holds raw records for ids the caller did not already know.
	New []*RawListing
	// Active holds every id the source currently lists, known or not.
	Active map[string]struct{}
	// Complete is false when any part of the search failed, in which case
	// Active may be missing live ids.
	Complete bool
}
