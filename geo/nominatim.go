package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"redfin-finder/utils"
)

// ErrNoResult is returned when the provider answers but knows no match.
var ErrNoResult = errors.New("geocode: no result")

// Geocoder resolves a free-form address to a coordinate.
type Geocoder interface {
	Lookup(ctx context.Context, address string) (Point, error)
}

// Nominatim is a Geocoder backed by the OpenStreetMap Nominatim search API.
// Every lookup goes through the throttle so consecutive requests stay at
// least the configured delay apart.
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	throttle   *utils.Throttle
}

// NewNominatim creates a Nominatim client.
func NewNominatim(baseURL, userAgent string, timeout time.Duration, throttle *utils.Throttle) *Nominatim {
	return &Nominatim{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		throttle:   throttle,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (n *Nominatim) Lookup(ctx context.Context, address string) (Point, error) {
	var pt Point
	err := n.throttle.Do(ctx, func() error {
		var err error
		pt, err = n.lookup(ctx, address)
		return err
	})
	return pt, err
}

func (n *Nominatim) lookup(ctx context.Context, address string) (Point, error) {
	q := url.Values{}
	q.Set("q", address)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("countrycodes", "us")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Point{}, fmt.Errorf("geocode: build request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("geocode: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("geocode: HTTP %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, fmt.Errorf("geocode: decode: %w", err)
	}
	if len(results) == 0 {
		return Point{}, ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocode: bad lat %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocode: bad lon %q: %w", results[0].Lon, err)
	}
	return Point{Lat: lat, Lng: lng}, nil
}
