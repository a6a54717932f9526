package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"redfin-finder/config"
	"redfin-finder/metrics"
	"redfin-finder/models"
	"redfin-finder/storage"
	"redfin-finder/utils"
)

type fakeSource struct {
	result models.FetchResult
	err    error
	known  utils.IDSet
}

func (f *fakeSource) Fetch(ctx context.Context, known utils.IDSet) (models.FetchResult, error) {
	f.known = known
	return f.result, f.err
}

type memStore struct {
	data  map[string]*models.Listing
	saves int
}

func (m *memStore) Load() map[string]*models.Listing {
	out := make(map[string]*models.Listing, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}

func (m *memStore) Save(store map[string]*models.Listing) error {
	m.saves++
	m.data = store
	return nil
}

type scriptedEnricher struct {
	panicOn string
	calls   []string
}

func (s *scriptedEnricher) Enrich(ctx context.Context, address string, lat, lng *float64) (models.Enrichment, error) {
	s.calls = append(s.calls, address)
	if address == s.panicOn {
		panic("boom")
	}
	return models.Enrichment{
		NearestTransit:  "Davis",
		DriveTransitMin: floatPtr(3),
		DriveDest1Min:   floatPtr(12),
		DriveDest2Min:   floatPtr(10),
	}, nil
}

type captureWriter struct {
	got [][]*models.Listing
}

func (c *captureWriter) Write(ctx context.Context, listings []*models.Listing) error {
	c.got = append(c.got, listings)
	return nil
}

func (c *captureWriter) Close() error { return nil }

func raw(id, address string, price int, beds *int) *models.RawListing {
	return &models.RawListing{ID: id, Address: address, Price: intPtr(price), Beds: beds}
}

func stored(id string, score float64) *models.Listing {
	return &models.Listing{ID: id, Address: id + " Old Rd, Somerville, MA 02143", Price: 1, Score: &score, Color: models.ColorYellow}
}

func newTestPipeline(src *fakeSource, st *memStore, enr *scriptedEnricher, out *captureWriter) *Pipeline {
	profile := config.DefaultProfile()
	log := newTestLogger()
	return &Pipeline{
		Source:      src,
		Store:       st,
		Cleaner:     NewCleaner(log),
		Filter:      NewFilter(profile.Filters, config.Towns, config.BlockedNeighborhoods, config.BlockedZips),
		Enricher:    enr,
		Rental:      NewRentalEstimator(config.FallbackRents(), log),
		Rater:       NewRater(profile),
		Assumptions: profile.Assumptions,
		Exporters:   []storage.ListingWriter{out},
		Insights:    NewInsightService(log),
		Logger:      log,
	}
}

func TestPipelineRun(t *testing.T) {
	st := &memStore{data: map[string]*models.Listing{
		"A": stored("A", 2.0), "B": stored("B", 1.8), "C": stored("C", 2.5),
	}}
	src := &fakeSource{result: models.FetchResult{
		New: []*models.RawListing{
			raw("D", "1 Elm St, Somerville, MA 02143", 550000, intPtr(2)),
			raw("E", "2 Elm St, Somerville, MA 02143", 650000, intPtr(2)),
			raw("F", "3 Elm St, Cambridge, MA 02139", 450000, intPtr(1)),
			raw("", "no id", 1, nil),
			raw("B", "B Old Rd, Somerville, MA 02143", 999, nil),
		},
		Active:   utils.NewIDSet("B", "C", "D", "E", "F"),
		Complete: true,
	}}
	enr := &scriptedEnricher{panicOn: "3 Elm St, Cambridge, MA 02139"}
	out := &captureWriter{}
	rec := metrics.New()
	p := newTestPipeline(src, st, enr, out)
	p.Metrics = rec

	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(src.known) != 3 || !src.known.Contains("A") {
		t.Errorf("source should receive the stored ids, got %v", src.known)
	}
	if st.saves != 1 {
		t.Errorf("saves: got %d, want 1", st.saves)
	}
	for _, id := range []string{"B", "C", "D", "F"} {
		if _, ok := st.data[id]; !ok {
			t.Errorf("store missing %s", id)
		}
	}
	if _, ok := st.data["A"]; ok {
		t.Error("A should be pruned")
	}
	if _, ok := st.data["E"]; ok {
		t.Error("E is over the price ceiling and should not be stored")
	}
	if st.data["B"].Price != 1 {
		t.Error("known listing must not be re-processed")
	}

	d := st.data["D"]
	if d.NearestTransit != "Davis" || d.DriveDest1Min == nil || *d.DriveDest1Min != 12 {
		t.Errorf("D enrichment: %+v", d)
	}
	if d.TownName() != "Somerville" {
		t.Errorf("D town: got %q", d.TownName())
	}
	if d.RentalOffset == nil || *d.RentalOffset != 1495 {
		t.Errorf("D rental offset: got %v, want 1495", d.RentalOffset)
	}
	if d.NetMonthlyCost == nil || d.Score == nil || d.Color == "" {
		t.Errorf("D should be costed and rated: %+v", d)
	}

	f := st.data["F"]
	if f.NearestTransit != models.TransitError || f.DriveTransitMin != nil {
		t.Errorf("F should carry the error sentinel: %+v", f)
	}
	if f.Score == nil {
		t.Error("F should still be rated")
	}
	if *f.RentalOffset != 0 {
		t.Errorf("one-bed offset: got %d", *f.RentalOffset)
	}

	if len(out.got) != 1 || len(out.got[0]) != 4 {
		t.Fatalf("export: got %v", out.got)
	}
	for i := 1; i < len(out.got[0]); i++ {
		if out.got[0][i-1].ScoreValue() < out.got[0][i].ScoreValue() {
			t.Errorf("export not sorted by descending score at %d", i)
		}
	}

	if summary.NewListings != 2 || summary.Pruned != 1 || summary.TotalListings != 4 {
		t.Errorf("summary: %+v", summary)
	}

	reg := rec.Registry()
	if got := counterValue(t, reg, "redfin_finder_source_new_listings_total", ""); got != 3 {
		t.Errorf("new listings metric: got %v, want 3 (counted before filtering)", got)
	}
	if got := counterValue(t, reg, "redfin_finder_filter_listings_total", FilterPassed); got != 2 {
		t.Errorf("passed metric: got %v, want 2", got)
	}
	if got := counterValue(t, reg, "redfin_finder_filter_listings_total", FilterPrice); got != 1 {
		t.Errorf("price metric: got %v, want 1", got)
	}
}

// counterValue sums the counter family name, restricted to samples carrying
// label value when it is non-empty.
func counterValue(t *testing.T, reg *prometheus.Registry, name, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var sum float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if value != "" {
				match := false
				for _, lp := range m.GetLabel() {
					if lp.GetValue() == value {
						match = true
					}
				}
				if !match {
					continue
				}
			}
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func TestPipelineIncompleteFetchSkipsPrune(t *testing.T) {
	st := &memStore{data: map[string]*models.Listing{"A": stored("A", 2.0), "B": stored("B", 2.1)}}
	src := &fakeSource{result: models.FetchResult{Active: utils.NewIDSet("B"), Complete: false}}

	summary, err := newTestPipeline(src, st, &scriptedEnricher{}, &captureWriter{}).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := st.data["A"]; !ok {
		t.Error("A must survive an incomplete search")
	}
	if summary.Pruned != 0 {
		t.Errorf("pruned: got %d", summary.Pruned)
	}
}

func TestPipelineFetchError(t *testing.T) {
	st := &memStore{data: map[string]*models.Listing{"A": stored("A", 2.0)}}
	src := &fakeSource{err: errors.New("all regions failed")}

	if _, err := newTestPipeline(src, st, &scriptedEnricher{}, &captureWriter{}).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if st.saves != 0 {
		t.Error("store must not be written after a failed fetch")
	}
}

func TestPipelineCancelledDuringEnrichment(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	st := &memStore{data: map[string]*models.Listing{}}
	src := &fakeSource{result: models.FetchResult{
		New:      []*models.RawListing{raw("D", "1 Elm St, Somerville, MA 02143", 400000, nil)},
		Active:   utils.NewIDSet("D"),
		Complete: true,
	}}
	cancel()
	p := newTestPipeline(src, st, &scriptedEnricher{}, &captureWriter{})
	p.Enricher = cancelledEnricher{}

	if _, err := p.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if st.saves != 0 {
		t.Error("cancelled run must not save")
	}
}

type cancelledEnricher struct{}

func (cancelledEnricher) Enrich(ctx context.Context, address string, lat, lng *float64) (models.Enrichment, error) {
	return models.Enrichment{}, ctx.Err()
}
