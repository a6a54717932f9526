package services

import (
	"context"
	"fmt"
	"time"

	"redfin-finder/config"
	"redfin-finder/metrics"
	"redfin-finder/models"
	"redfin-finder/storage"
	"redfin-finder/utils"
)

// Source lists the currently active listings. known holds the ids already
// tracked; raw records are returned only for ids outside it.
type Source interface {
	Fetch(ctx context.Context, known utils.IDSet) (models.FetchResult, error)
}

// Store loads and saves the keyed listing document.
type Store interface {
	Load() map[string]*models.Listing
	Save(store map[string]*models.Listing) error
}

// ListingEnricher computes the travel fields for one listing.
type ListingEnricher interface {
	Enrich(ctx context.Context, address string, lat, lng *float64) (models.Enrichment, error)
}

// Pipeline runs one fetch, filter, enrich, rate, persist and export cycle.
type Pipeline struct {
	Source      Source
	Store       Store
	Cleaner     *Cleaner
	Filter      *Filter
	Enricher    ListingEnricher
	Rental      *RentalEstimator
	Rater       *Rater
	Assumptions config.Assumptions
	Exporters   []storage.ListingWriter
	Insights    *InsightService
	Logger      *utils.Logger
	Metrics     *metrics.Recorder
}

// Run executes the cycle and returns the run summary. Per-listing failures
// degrade that listing only; the error is non-nil when the source, the
// store or the context fails.
func (p *Pipeline) Run(ctx context.Context) (*models.RunSummary, error) {
	start := time.Now()
	log := p.Logger

	store := p.Store.Load()
	log.Info("[pipeline] Loaded %d stored listings", len(store))

	known := make(utils.IDSet, len(store))
	for id := range store {
		known.Add(id)
	}

	log.Info("[pipeline] Step 1/5: Fetching active listings...")
	res, err := p.Source.Fetch(ctx, known)
	if err != nil {
		return nil, fmt.Errorf("pipeline: fetch: %w", err)
	}
	log.Info("[pipeline] %d active listings, %d new raw records", len(res.Active), len(res.New))

	pruned := 0
	if res.Complete {
		stale := storage.StaleIDs(store, res.Active)
		pruned = storage.Prune(store, stale)
		if pruned > 0 {
			log.Info("[pipeline] Pruned %d listings no longer for sale", pruned)
		}
	} else {
		log.Warn("[pipeline] Search was incomplete, skipping prune this run")
	}
	p.Metrics.Pruned(pruned)

	log.Info("[pipeline] Step 2/5: Cleaning and filtering...")
	var candidates []*models.Listing
	unseen := 0
	for _, l := range p.Cleaner.Clean(res.New) {
		if known.Contains(l.ID) {
			continue
		}
		unseen++
		if town, ok := p.Filter.ResolveTown(l.Address, l.TownName()); ok {
			l.Town = &town
		}
		outcome := p.Filter.Check(l)
		p.Metrics.Filtered(outcome)
		if outcome != FilterPassed {
			log.Debug("[pipeline] Filtered out (%s): %s (price=%d, hoa=%d)", outcome, l.Address, l.Price, l.HOA)
			continue
		}
		candidates = append(candidates, l)
	}
	p.Metrics.NewListings(unseen)
	log.Info("[pipeline] %d new listings passed the filters", len(candidates))

	log.Info("[pipeline] Step 3/5: Computing driving times...")
	for i, l := range candidates {
		log.Info("[pipeline]   [%d/%d] %s", i+1, len(candidates), l.Address)
		enr, err := p.safeEnrich(ctx, l)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("pipeline: enrich: %w", ctxErr)
			}
			p.Metrics.Enriched("error")
			log.Error("[pipeline] Enrichment failed for %s: %v", l.Address, err)
			enr = models.Enrichment{NearestTransit: models.TransitError}
		}
		enr.Apply(l)
	}

	log.Info("[pipeline] Step 4/5: Estimating costs and rating...")
	for _, l := range candidates {
		offset := p.Rental.Offset(l.TownName(), l.RentEstimate, l.Beds)
		net := NetMonthlyCost(l.Price, l.HOA, offset, p.Assumptions)
		l.RentalOffset = &offset
		l.NetMonthlyCost = &net
		rating := p.Rater.Apply(l)
		p.Metrics.Rated(rating.Color)
	}

	storage.Merge(store, candidates)
	if err := p.Store.Save(store); err != nil {
		return nil, fmt.Errorf("pipeline: save store: %w", err)
	}
	p.Metrics.StoreSize(len(store))

	log.Info("[pipeline] Step 5/5: Exporting %d listings...", len(store))
	sorted := storage.SortedByScore(store)
	for _, w := range p.Exporters {
		if err := w.Write(ctx, sorted); err != nil {
			log.Error("[pipeline] Export failed: %v", err)
		}
	}

	summary := p.Insights.Generate(sorted, len(candidates), pruned)
	elapsed := time.Since(start)
	p.Metrics.RunFinished(elapsed)
	log.Info("[pipeline] Run complete in %.1f seconds | Green: %d | Yellow: %d | Red: %d",
		elapsed.Seconds(), summary.Green, summary.Yellow, summary.Red)
	return summary, nil
}

// safeEnrich turns a panic inside the enricher into an error.
func (p *Pipeline) safeEnrich(ctx context.Context, l *models.Listing) (enr models.Enrichment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return p.Enricher.Enrich(ctx, l.Address, l.Latitude, l.Longitude)
}
