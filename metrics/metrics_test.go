package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	r := New()
	r.Rated("Green")
	r.Rated("Green")
	r.Rated("Red")
	r.GeocacheHit()
	r.Pruned(3)
	r.NewListings(4)

	if got := testutil.ToFloat64(r.listingsRated.WithLabelValues("Green")); got != 2 {
		t.Errorf("green: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.listingsRated.WithLabelValues("Red")); got != 1 {
		t.Errorf("red: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.geocacheHits); got != 1 {
		t.Errorf("cache hits: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.listingsPruned); got != 3 {
		t.Errorf("pruned: got %v, want 3", got)
	}
	if got := testutil.ToFloat64(r.newListings); got != 4 {
		t.Errorf("new listings: got %v, want 4", got)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	r.Rated("Green")
	r.Enriched("ok")
	r.RunFinished(time.Second)
	if err := r.WriteTextfile("ignored.prom"); err != nil {
		t.Errorf("nil recorder write: %v", err)
	}
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.StoreSize(42)
	r.RunFinished(1500 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "sub", "finder.prom")
	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "redfin_finder_store_listings 42") {
		t.Errorf("textfile missing store gauge:\n%s", data)
	}
}
