package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"redfin-finder/utils"
)

func TestNominatimLookup(t *testing.T) {
	var gotUA, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[{"lat":"42.3601","lon":"-71.0589"}]`))
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL, "finder-test", time.Second, utils.NewThrottle(0))
	pt, err := n.Lookup(context.Background(), "1 City Hall Sq, Boston, MA")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if pt.Lat != 42.3601 || pt.Lng != -71.0589 {
		t.Errorf("point: got %+v", pt)
	}
	if gotUA != "finder-test" {
		t.Errorf("User-Agent: got %q", gotUA)
	}
	if gotQuery != "1 City Hall Sq, Boston, MA" {
		t.Errorf("query: got %q", gotQuery)
	}
}

func TestNominatimEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL, "ua", time.Second, utils.NewThrottle(0))
	if _, err := n.Lookup(context.Background(), "nowhere"); !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestNominatimMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>busy</html>`))
	}))
	defer srv.Close()

	n := NewNominatim(srv.URL, "ua", time.Second, utils.NewThrottle(0))
	_, err := n.Lookup(context.Background(), "x")
	if err == nil || errors.Is(err, ErrNoResult) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestNominatimSpacesRequests(t *testing.T) {
	var hits []time.Time
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, time.Now())
		_, _ = w.Write([]byte(`[{"lat":"1","lon":"2"}]`))
	}))
	defer srv.Close()

	gap := 80 * time.Millisecond
	n := NewNominatim(srv.URL, "ua", time.Second, utils.NewThrottle(gap))
	for i := 0; i < 3; i++ {
		if _, err := n.Lookup(context.Background(), "a"); err != nil {
			t.Fatal(err)
		}
	}
	for i := 1; i < len(hits); i++ {
		if d := hits[i].Sub(hits[i-1]); d < gap {
			t.Errorf("requests %d and %d only %v apart", i-1, i, d)
		}
	}
}

func TestOSRMDurations(t *testing.T) {
	var path string
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"code":"Ok","durations":[[300.0,null,1260.5]]}`))
	}))
	defer srv.Close()

	o := NewOSRM(srv.URL+"/", "ua", time.Second, utils.NewThrottle(0))
	got, err := o.Durations(context.Background(),
		Point{Lat: 42.1, Lng: -71.1},
		[]Point{{Lat: 42.2, Lng: -71.2}, {Lat: 42.3, Lng: -71.3}, {Lat: 42.4, Lng: -71.4}})
	if err != nil {
		t.Fatalf("Durations: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len: got %d, want 3", len(got))
	}
	if got[0] == nil || *got[0] != 300 {
		t.Errorf("first duration: got %v", got[0])
	}
	if got[1] != nil {
		t.Errorf("unroutable destination should be nil, got %v", *got[1])
	}
	if !strings.HasPrefix(path, "/table/v1/driving/-71.100000,42.100000;") {
		t.Errorf("path should start with origin as lng,lat: %s", path)
	}
	if query["destinations"][0] != "1;2;3" || query["sources"][0] != "0" {
		t.Errorf("query: %v", query)
	}
}

func TestOSRMErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"InvalidQuery","message":"bad coords"}`))
	}))
	defer srv.Close()

	o := NewOSRM(srv.URL, "ua", time.Second, utils.NewThrottle(0))
	if _, err := o.Durations(context.Background(), Point{}, []Point{{}}); err == nil {
		t.Error("expected error for non-Ok code")
	}
}

func TestOSRMShortTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"Ok","durations":[[10.0]]}`))
	}))
	defer srv.Close()

	o := NewOSRM(srv.URL, "ua", time.Second, utils.NewThrottle(0))
	if _, err := o.Durations(context.Background(), Point{}, []Point{{}, {}}); err == nil {
		t.Error("expected error for short duration row")
	}
}
