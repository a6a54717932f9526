package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"redfin-finder/utils"
)

// Router returns driving durations in seconds from one origin to each
// destination. A nil entry means the destination could not be routed.
type Router interface {
	Durations(ctx context.Context, origin Point, dests []Point) ([]*float64, error)
}

// OSRM is a Router backed by the OSRM table service. One call covers every
// destination; the throttle spaces consecutive calls.
type OSRM struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	throttle   *utils.Throttle
}

// NewOSRM creates an OSRM client for a server rooted at baseURL
// (e.g. https://router.project-osrm.org).
func NewOSRM(baseURL, userAgent string, timeout time.Duration, throttle *utils.Throttle) *OSRM {
	return &OSRM{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		throttle:   throttle,
	}
}

type osrmTable struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Durations [][]*float64 `json:"durations"`
}

func (o *OSRM) Durations(ctx context.Context, origin Point, dests []Point) ([]*float64, error) {
	var out []*float64
	err := o.throttle.Do(ctx, func() error {
		var err error
		out, err = o.table(ctx, origin, dests)
		return err
	})
	return out, err
}

// tableURL builds the request; OSRM takes lng,lat pairs.
func (o *OSRM) tableURL(origin Point, dests []Point) string {
	coords := make([]string, 0, len(dests)+1)
	coords = append(coords, formatCoord(origin))
	idx := make([]string, 0, len(dests))
	for i, d := range dests {
		coords = append(coords, formatCoord(d))
		idx = append(idx, strconv.Itoa(i+1))
	}

	q := url.Values{}
	q.Set("sources", "0")
	q.Set("destinations", strings.Join(idx, ";"))
	q.Set("annotations", "duration")
	return o.baseURL + "/table/v1/driving/" + strings.Join(coords, ";") + "?" + q.Encode()
}

func formatCoord(p Point) string {
	return strconv.FormatFloat(p.Lng, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lat, 'f', 6, 64)
}

func (o *OSRM) table(ctx context.Context, origin Point, dests []Point) ([]*float64, error) {
	if len(dests) == 0 {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.tableURL(origin, dests), nil)
	if err != nil {
		return nil, fmt.Errorf("route: build request: %w", err)
	}
	req.Header.Set("User-Agent", o.userAgent)

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("route: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var table osrmTable
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		return nil, fmt.Errorf("route: decode (HTTP %d): %w", resp.StatusCode, err)
	}
	if table.Code != "Ok" {
		return nil, fmt.Errorf("route: OSRM code %q: %s", table.Code, table.Message)
	}
	if len(table.Durations) == 0 || len(table.Durations[0]) != len(dests) {
		return nil, fmt.Errorf("route: expected %d durations, got malformed table", len(dests))
	}
	return table.Durations[0], nil
}
