package geo

import (
	"context"
	"errors"

	"redfin-finder/metrics"
	"redfin-finder/utils"
)

// CacheBacking persists resolved coordinates across runs.
type CacheBacking interface {
	LoadAll(ctx context.Context) (map[string]Point, error)
	Put(ctx context.Context, address string, pt Point) error
}

// GeoCache memoizes address lookups for the life of the process. Unresolved
// addresses are remembered too, so a failing address is looked up once per
// run. Only resolved points reach the backing store.
type GeoCache struct {
	geocoder Geocoder
	backing  CacheBacking
	logger   *utils.Logger
	metrics  *metrics.Recorder
	entries  map[string]*Point
}

// NewGeoCache creates a cache in front of g. backing and rec may be nil.
// A backing that cannot be read is logged and ignored.
func NewGeoCache(ctx context.Context, g Geocoder, backing CacheBacking, logger *utils.Logger, rec *metrics.Recorder) *GeoCache {
	c := &GeoCache{
		geocoder: g,
		backing:  backing,
		logger:   logger,
		metrics:  rec,
		entries:  make(map[string]*Point),
	}
	if backing != nil {
		stored, err := backing.LoadAll(ctx)
		if err != nil {
			logger.Warn("[geocache] Could not read persisted cache, starting empty: %v", err)
		}
		for addr, pt := range stored {
			pt := pt
			c.entries[addr] = &pt
		}
		if len(stored) > 0 {
			logger.Debug("[geocache] Preloaded %d addresses", len(stored))
		}
	}
	return c
}

// Len returns the number of memoized addresses, resolved or not.
func (c *GeoCache) Len() int { return len(c.entries) }

// Geocode resolves address, returning ok=false when it cannot be resolved.
// Failures are logged, never returned.
func (c *GeoCache) Geocode(ctx context.Context, address string) (Point, bool) {
	if pt, seen := c.entries[address]; seen {
		c.metrics.GeocacheHit()
		if pt == nil {
			return Point{}, false
		}
		return *pt, true
	}

	pt, err := c.geocoder.Lookup(ctx, address)
	switch {
	case errors.Is(err, ErrNoResult):
		c.metrics.GeocodeRequest("empty")
		c.logger.Warn("[geocache] No geocoding result for: %s", address)
		c.entries[address] = nil
		return Point{}, false
	case err != nil:
		c.metrics.GeocodeRequest("error")
		c.logger.Warn("[geocache] Geocoding failed for %s: %v", address, err)
		c.entries[address] = nil
		return Point{}, false
	}

	c.metrics.GeocodeRequest("ok")
	c.entries[address] = &pt
	if c.backing != nil {
		if err := c.backing.Put(ctx, address, pt); err != nil {
			c.logger.Warn("[geocache] Could not persist %s: %v", address, err)
		}
	}
	return pt, true
}
