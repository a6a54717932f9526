// Package metrics records per-run pipeline counters and writes them in the
// Prometheus text format for a node-exporter textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "redfin_finder"

// Recorder owns a private registry. A nil *Recorder records nothing.
type Recorder struct {
	registry *prometheus.Registry

	newListings      prometheus.Counter
	listingsFiltered *prometheus.CounterVec
	listingsEnriched *prometheus.CounterVec
	listingsRated    *prometheus.CounterVec
	listingsPruned   prometheus.Counter

	geocodeRequests *prometheus.CounterVec
	geocacheHits    prometheus.Counter
	routeRequests   *prometheus.CounterVec

	storeSize   prometheus.Gauge
	runDuration prometheus.Gauge
	lastRun     prometheus.Gauge
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		newListings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "new_listings_total",
			Help:      "Cleaned listings returned by the source that were not already stored",
		}),
		listingsFiltered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "filter",
			Name:      "listings_total",
			Help:      "Listings evaluated by the filter, by outcome",
		}, []string{"outcome"}),
		listingsEnriched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "enrich",
			Name:      "listings_total",
			Help:      "Listings passed through enrichment, by status",
		}, []string{"status"}),
		listingsRated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rating",
			Name:      "listings_total",
			Help:      "Listings rated, by color",
		}, []string{"color"}),
		listingsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "pruned_total",
			Help:      "Stored listings removed because the source no longer reports them",
		}),

		geocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "geocode",
			Name:      "requests_total",
			Help:      "External geocoding lookups, by result",
		}, []string{"result"}),
		geocacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "geocode",
			Name:      "cache_hits_total",
			Help:      "Geocode calls answered from the cache",
		}),
		routeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "route",
			Name:      "requests_total",
			Help:      "Batched routing table requests, by result",
		}, []string{"result"}),

		storeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "listings",
			Help:      "Listings held in the store after the run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the last run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}

	r.registry.MustRegister(
		r.newListings, r.listingsFiltered, r.listingsEnriched, r.listingsRated, r.listingsPruned,
		r.geocodeRequests, r.geocacheHits, r.routeRequests,
		r.storeSize, r.runDuration, r.lastRun,
	)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// NewListings counts source listings not yet in the store, before filtering.
func (r *Recorder) NewListings(n int) {
	if r == nil {
		return
	}
	r.newListings.Add(float64(n))
}

// Filtered records one filter decision: "passed" or the rejecting rule
// ("price", "hoa" or "location").
func (r *Recorder) Filtered(outcome string) {
	if r == nil {
		return
	}
	r.listingsFiltered.WithLabelValues(outcome).Inc()
}

// Enriched records one enrichment ("ok", "unresolved", "no_route" or "error").
func (r *Recorder) Enriched(status string) {
	if r == nil {
		return
	}
	r.listingsEnriched.WithLabelValues(status).Inc()
}

// Rated records one rated listing by its color.
func (r *Recorder) Rated(color string) {
	if r == nil {
		return
	}
	r.listingsRated.WithLabelValues(color).Inc()
}

// Pruned adds n listings removed as no longer for sale.
func (r *Recorder) Pruned(n int) {
	if r == nil {
		return
	}
	r.listingsPruned.Add(float64(n))
}

// GeocodeRequest records one external lookup ("ok", "empty" or "error").
func (r *Recorder) GeocodeRequest(result string) {
	if r == nil {
		return
	}
	r.geocodeRequests.WithLabelValues(result).Inc()
}

// GeocacheHit records a geocode answered from the cache.
func (r *Recorder) GeocacheHit() {
	if r == nil {
		return
	}
	r.geocacheHits.Inc()
}

// RouteRequest records one table call ("ok" or "error").
func (r *Recorder) RouteRequest(result string) {
	if r == nil {
		return
	}
	r.routeRequests.WithLabelValues(result).Inc()
}

// StoreSize sets the number of listings held after the run.
func (r *Recorder) StoreSize(n int) {
	if r == nil {
		return
	}
	r.storeSize.Set(float64(n))
}

// RunFinished stamps the run duration and completion time.
func (r *Recorder) RunFinished(d time.Duration) {
	if r == nil {
		return
	}
	r.runDuration.Set(d.Seconds())
	r.lastRun.SetToCurrentTime()
}

// WriteTextfile atomically writes every metric to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("metrics: create dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}
