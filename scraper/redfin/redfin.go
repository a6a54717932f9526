package redfin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"redfin-finder/config"
	"redfin-finder/models"
	"redfin-finder/utils"
)

const (
	statusForSale = "9"
	gisVersion    = "8"
)

var browserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
}

// errForbidden marks a 403, which Redfin returns when it throttles a client.
var errForbidden = errors.New("redfin: 403 forbidden")

// DetailFetcher fills fields the search payload does not carry.
type DetailFetcher interface {
	Fill(ctx context.Context, raw *models.RawListing) error
}

// Scraper searches the Redfin GIS endpoint once per configured town.
type Scraper struct {
	searchURL   string
	maxHomes    int
	maxPrice    int
	regionDelay time.Duration
	towns       []config.Town
	httpClient  *http.Client
	retry       *utils.RetryConfig
	logger      *utils.Logger
	detail      DetailFetcher
	agentIdx    atomic.Uint32
}

// New creates a ready-to-use Redfin Scraper for config.Towns.
func New(cfg *config.Config, logger *utils.Logger) (*Scraper, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("redfin: invalid proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
		logger.Info("[redfin] Routing searches through proxy %s", proxy.Host)
	}

	return &Scraper{
		searchURL:   cfg.SearchURL,
		maxHomes:    cfg.MaxHomes,
		maxPrice:    cfg.Profile.Filters.MaxPrice,
		regionDelay: cfg.RegionDelay,
		towns:       config.Towns,
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout, Transport: transport},
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   5 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}, nil
}

// WithDetails enables the detail-page pass for new listings.
func (s *Scraper) WithDetails(d DetailFetcher) *Scraper {
	s.detail = d
	return s
}

// Fetch searches every town, collecting all active ids and raw records for
// ids not in known. A town whose search fails marks the result incomplete;
// an error is returned only when every town fails or ctx is cancelled.
func (s *Scraper) Fetch(ctx context.Context, known utils.IDSet) (models.FetchResult, error) {
	active := utils.NewIDSet()
	res := models.FetchResult{Active: active, Complete: true}
	failed := 0

	for i, town := range s.towns {
		if i > 0 {
			if err := utils.Sleep(ctx, s.regionDelay); err != nil {
				return models.FetchResult{}, err
			}
		}

		s.logger.Info("[redfin] Searching %s (region_id=%s)...", town.Name, town.RegionID)
		homes, err := s.searchTown(ctx, town)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return models.FetchResult{}, ctxErr
			}
			s.logger.Error("[redfin] Search failed for %s: %v", town.Name, err)
			res.Complete = false
			failed++
			continue
		}

		added := 0
		for _, h := range homes {
			raw, ok := extractListing(h, town.Name)
			if !ok {
				continue
			}
			if !active.Add(raw.ID) {
				continue
			}
			if known.Contains(raw.ID) {
				s.logger.Debug("[redfin] Skipping known listing %s", raw.ID)
				continue
			}
			res.New = append(res.New, raw)
			added++
		}
		s.logger.Info("[redfin] %s: %d homes returned, %d new", town.Name, len(homes), added)
	}

	if len(s.towns) > 0 && failed == len(s.towns) {
		return models.FetchResult{}, fmt.Errorf("redfin: all %d town searches failed", failed)
	}

	if s.detail != nil {
		s.fillDetails(ctx, res.New)
	}

	s.logger.Info("[redfin] Total new listings found: %d", len(res.New))
	return res, nil
}

func (s *Scraper) fillDetails(ctx context.Context, listings []*models.RawListing) {
	for _, raw := range listings {
		if raw.URL == "" {
			continue
		}
		if err := s.detail.Fill(ctx, raw); err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn("[redfin] Detail page failed for %s: %v", raw.URL, err)
		}
	}
}

func (s *Scraper) searchTown(ctx context.Context, town config.Town) ([]gisHome, error) {
	var homes []gisHome
	err := s.retry.Do(ctx, "gis search "+town.Name, func() error {
		var err error
		homes, err = s.search(ctx, town)
		return err
	})
	return homes, err
}

func (s *Scraper) searchRequestURL(town config.Town) string {
	regionType := town.RegionType
	if regionType == "" {
		regionType = "2"
	}
	q := url.Values{}
	q.Set("al", "1")
	q.Set("num_homes", strconv.Itoa(s.maxHomes))
	q.Set("region_id", town.RegionID)
	q.Set("region_type", regionType)
	q.Set("status", statusForSale)
	q.Set("v", gisVersion)
	if s.maxPrice > 0 {
		q.Set("max_price", strconv.Itoa(s.maxPrice))
	}
	return s.searchURL + "?" + q.Encode()
}

func (s *Scraper) search(ctx context.Context, town config.Town) ([]gisHome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.searchRequestURL(town), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", utils.ErrPermanent, err)
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", siteURL+"/")
	req.Header.Set("User-Agent", s.nextAgent())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("redfin: request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, errForbidden
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("redfin: HTTP %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: redfin HTTP %d", utils.ErrPermanent, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("redfin: read body: %w", err)
	}
	return decodeGIS(body)
}

func (s *Scraper) nextAgent() string {
	i := s.agentIdx.Add(1) - 1
	return browserAgents[int(i)%len(browserAgents)]
}
