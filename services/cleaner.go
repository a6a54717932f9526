package services

import (
	"strings"
	"time"

	"redfin-finder/models"
	"redfin-finder/utils"
)

// Cleaner transforms RawListings into Listings ready for filtering.
type Cleaner struct {
	logger *utils.Logger
	now    func() time.Time
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger, now: time.Now}
}

// Clean drops records without an id or a price, removes duplicate ids and
// fills the defaults: fee 0 and parking "Unknown".
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.Listing {
	seen := make(map[string]struct{})
	result := make([]*models.Listing, 0, len(raw))
	now := c.now().UTC()

	for _, r := range raw {
		if r == nil {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			c.logger.Debug("[cleaner] Dropping record without id: %s", r.Address)
			continue
		}
		if r.Price == nil {
			c.logger.Debug("[cleaner] Dropping %s: no price", id)
			continue
		}
		if _, dup := seen[id]; dup {
			c.logger.Debug("[cleaner] Duplicate id skipped: %s", id)
			continue
		}
		seen[id] = struct{}{}

		listing := &models.Listing{
			ID:            id,
			Address:       tidy(r.Address),
			URL:           strings.TrimSpace(r.URL),
			Price:         *r.Price,
			Beds:          r.Beds,
			Baths:         r.Baths,
			Sqft:          r.Sqft,
			InUnitLaundry: r.InUnitLaundry,
			Parking:       tidy(r.Parking),
			RentEstimate:  r.RentEstimate,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			FirstSeen:     now,
		}
		if r.HOA != nil {
			listing.HOA = *r.HOA
		}
		if listing.Parking == "" {
			listing.Parking = models.ParkingUnknown
		}
		if hint := tidy(r.Town); hint != "" {
			listing.Town = &hint
		}

		result = append(result, listing)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// tidy strips leading/trailing whitespace and collapses internal whitespace.
func tidy(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
