package services

import (
	"context"
	"errors"
	"math"

	"redfin-finder/config"
	"redfin-finder/geo"
	"redfin-finder/metrics"
	"redfin-finder/models"
	"redfin-finder/utils"
)

// ErrNoStations is returned when the transit index holds no stations.
var ErrNoStations = errors.New("enrich: transit index is empty")

// PointResolver resolves an address to a coordinate, memoized or not.
type PointResolver interface {
	Geocode(ctx context.Context, address string) (geo.Point, bool)
}

// StationFinder returns the transit station nearest a coordinate.
type StationFinder interface {
	Nearest(lat, lng float64) (geo.Station, bool)
}

// Enricher computes the nearest station and the driving times from a
// listing to that station and to the two fixed destinations.
type Enricher struct {
	geocoder PointResolver
	transit  StationFinder
	router   geo.Router
	dest1    config.Destination
	dest2    config.Destination
	logger   *utils.Logger
	metrics  *metrics.Recorder
}

// NewEnricher wires the collaborators. rec may be nil.
func NewEnricher(geocoder PointResolver, transit StationFinder, router geo.Router,
	dest1, dest2 config.Destination, logger *utils.Logger, rec *metrics.Recorder) *Enricher {
	return &Enricher{
		geocoder: geocoder,
		transit:  transit,
		router:   router,
		dest1:    dest1,
		dest2:    dest2,
		logger:   logger,
		metrics:  rec,
	}
}

// Enrich resolves the listing position (skipping geocoding when both
// coordinates are given), picks the nearest station and requests all three
// driving times in one routing call. An unresolvable address yields the
// "Unknown" station and no durations; a routing failure keeps the station
// and leaves durations nil. Errors are returned only for cancellation or an
// empty transit index.
func (e *Enricher) Enrich(ctx context.Context, address string, lat, lng *float64) (models.Enrichment, error) {
	if err := ctx.Err(); err != nil {
		return models.Enrichment{}, err
	}

	var origin geo.Point
	if lat != nil && lng != nil {
		origin = geo.Point{Lat: *lat, Lng: *lng}
	} else {
		pt, ok := e.geocoder.Geocode(ctx, address)
		if !ok {
			if err := ctx.Err(); err != nil {
				return models.Enrichment{}, err
			}
			e.metrics.Enriched("unresolved")
			return models.Enrichment{NearestTransit: models.TransitUnknown}, nil
		}
		origin = pt
	}

	station, ok := e.transit.Nearest(origin.Lat, origin.Lng)
	if !ok {
		return models.Enrichment{}, ErrNoStations
	}
	out := models.Enrichment{NearestTransit: station.Name}

	dests := []geo.Point{
		station.Point(),
		{Lat: e.dest1.Lat, Lng: e.dest1.Lng},
		{Lat: e.dest2.Lat, Lng: e.dest2.Lng},
	}
	secs, err := e.router.Durations(ctx, origin, dests)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Enrichment{}, ctxErr
		}
		e.metrics.RouteRequest("error")
		e.metrics.Enriched("no_route")
		e.logger.Warn("[enrich] Routing failed for %s: %v", address, err)
		return out, nil
	}
	e.metrics.RouteRequest("ok")
	if len(secs) != len(dests) {
		e.metrics.Enriched("no_route")
		e.logger.Warn("[enrich] Routing returned %d durations for %s, expected %d", len(secs), address, len(dests))
		return out, nil
	}

	out.DriveTransitMin = toMinutes(secs[0])
	out.DriveDest1Min = toMinutes(secs[1])
	out.DriveDest2Min = toMinutes(secs[2])
	e.metrics.Enriched("ok")
	return out, nil
}

// toMinutes converts seconds to minutes rounded to one decimal.
func toMinutes(sec *float64) *float64 {
	if sec == nil {
		return nil
	}
	m := math.Round(*sec/60*10) / 10
	return &m
}
