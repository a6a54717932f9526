package redfin

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"redfin-finder/config"
	"redfin-finder/models"
	"redfin-finder/utils"
)

const detailPageTimeout = 60 * time.Second

var rentEstimateRegexp = regexp.MustCompile(`(?i)rent(?:al)?\s+estimate[^$]{0,60}\$\s?([\d,]+)`)

// BrowserDetails loads listing pages in headless Chrome to read the
// in-unit laundry flag and the rental estimate.
type BrowserDetails struct {
	logger   *utils.Logger
	retry    *utils.RetryConfig
	throttle *utils.Throttle

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewBrowserDetails starts a browser allocator. Close releases it.
func NewBrowserDetails(cfg *config.Config, logger *utils.Logger) *BrowserDetails {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	logger.Info("[redfin] Using browser binary for detail pages: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent(browserAgents[0]),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}
	if cfg.ProxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(cfg.ProxyURL))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return &BrowserDetails{
		logger:   logger,
		retry:    &utils.RetryConfig{MaxAttempts: 2, BaseDelay: 3 * time.Second, Logger: logger},
		throttle: utils.NewThrottle(cfg.DetailDelay),
		allocCtx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}
}

// Fill visits raw.URL and sets InUnitLaundry and RentEstimate when the page
// states them. Fields the page does not mention are left untouched.
func (b *BrowserDetails) Fill(ctx context.Context, raw *models.RawListing) error {
	var text string
	err := b.throttle.Do(ctx, func() error {
		return b.retry.Do(ctx, "detail-page", func() error {
			var err error
			text, err = b.pageText(ctx, raw.URL)
			return err
		})
	})
	if err != nil {
		return err
	}

	if v := parseLaundry(text); v != nil {
		raw.InUnitLaundry = v
	}
	if v := parseRentEstimate(text); v != nil {
		raw.RentEstimate = v
	}
	b.logger.Debug("[redfin] Detail %s: laundry=%v rent=%v", raw.ID, deref(raw.InUnitLaundry), deref(raw.RentEstimate))
	return nil
}

func (b *BrowserDetails) pageText(ctx context.Context, pageURL string) (string, error) {
	tabCtx, cancel := chromedp.NewContext(b.allocCtx)
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, detailPageTimeout)
	defer cancelTimeout()

	// Tie the tab to the caller's cancellation as well.
	stop := context.AfterFunc(ctx, cancelTimeout)
	defer stop()

	var text string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(`(function() {
			var parts = [];
			var sections = document.querySelectorAll(
				'.amenities-container, .super-group-content, [data-rf-test-id="rental-estimate"], .RentalEstimate, #property-details-scroll');
			for (var i = 0; i < sections.length; i++) parts.push(sections[i].innerText);
			if (parts.length === 0 && document.body) parts.push(document.body.innerText);
			return parts.join('\n');
		})()`, &text),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp detail extract: %w", err)
	}
	return text, nil
}

// Close shuts the browser down.
func (b *BrowserDetails) Close() error {
	b.cancel()
	return nil
}

// parseLaundry reads an in-unit laundry statement from page text.
func parseLaundry(text string) *bool {
	t := strings.ToLower(text)
	yes, no := true, false
	for _, s := range []string{"in-unit laundry", "in unit laundry", "laundry: in unit", "washer/dryer in unit", "washer & dryer in unit", "laundry features: in unit"} {
		if strings.Contains(t, s) {
			return &yes
		}
	}
	for _, s := range []string{"laundry: common", "laundry: shared", "shared laundry", "common laundry", "laundry in building", "no laundry", "laundry: none"} {
		if strings.Contains(t, s) {
			return &no
		}
	}
	return nil
}

// parseRentEstimate finds "Rental estimate ... $3,100" in page text.
func parseRentEstimate(text string) *int {
	m := rentEstimateRegexp.FindStringSubmatch(text)
	if len(m) < 2 {
		return nil
	}
	v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func deref[T any](p *T) any {
	if p == nil {
		return "?"
	}
	return *p
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
