package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"redfin-finder/models"
)

// CSVWriter exports listings to a stable CSV file and, optionally, a
// timestamped snapshot beside it. It is safe for concurrent use.
type CSVWriter struct {
	mu         sync.Mutex
	path       string
	snapshots  bool
	dest1Label string
	dest2Label string
	now        func() time.Time

	lastSnapshot string
}

// NewCSVWriter creates a writer for path. Intermediate directories are
// created automatically. The destination labels name the two commute
// columns.
func NewCSVWriter(path string, snapshots bool, dest1Label, dest2Label string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{
		path:       path,
		snapshots:  snapshots,
		dest1Label: dest1Label,
		dest2Label: dest2Label,
		now:        time.Now,
	}, nil
}

// LastSnapshot returns the path of the most recent snapshot, or "".
func (c *CSVWriter) LastSnapshot() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSnapshot
}

func (c *CSVWriter) header() []string {
	return []string{
		"id", "address", "town", "url", "price", "hoa_monthly", "beds", "baths", "sqft",
		"in_unit_laundry", "parking", "rent_estimate", "rental_offset", "net_monthly_cost",
		"nearest_transit", "drive_transit_min",
		"drive_" + slug(c.dest1Label) + "_min", "drive_" + slug(c.dest2Label) + "_min",
		"rating_score", "rating", "first_seen",
	}
}

// Write replaces the stable file with listings (in the given order) and
// writes a snapshot when enabled.
func (c *CSVWriter) Write(ctx context.Context, listings []*models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.writeFile(c.path, listings); err != nil {
		return err
	}
	if c.snapshots {
		ext := filepath.Ext(c.path)
		base := strings.TrimSuffix(c.path, ext)
		snap := fmt.Sprintf("%s_%s%s", base, c.now().Format("20060102_150405"), ext)
		if err := c.writeFile(snap, listings); err != nil {
			return err
		}
		c.lastSnapshot = snap
	}
	return nil
}

func (c *CSVWriter) writeFile(path string, listings []*models.Listing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(c.header()); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, l := range listings {
		if err := w.Write(row(l)); err != nil {
			_ = f.Close()
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return f.Close()
}

func row(l *models.Listing) []string {
	firstSeen := ""
	if !l.FirstSeen.IsZero() {
		firstSeen = l.FirstSeen.Format(time.RFC3339)
	}
	score := ""
	if l.Score != nil {
		score = strconv.FormatFloat(*l.Score, 'f', 2, 64)
	}
	return []string{
		l.ID,
		l.Address,
		l.TownName(),
		l.URL,
		strconv.Itoa(l.Price),
		strconv.Itoa(l.HOA),
		optInt(l.Beds),
		optFloat(l.Baths, -1),
		optInt(l.Sqft),
		optBool(l.InUnitLaundry),
		l.Parking,
		optInt(l.RentEstimate),
		optInt(l.RentalOffset),
		optFloat(l.NetMonthlyCost, 2),
		l.NearestTransit,
		optFloat(l.DriveTransitMin, 1),
		optFloat(l.DriveDest1Min, 1),
		optFloat(l.DriveDest2Min, 1),
		score,
		l.Color,
		firstSeen,
	}
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optFloat(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func optBool(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}

// slug turns a destination label into a column-name fragment.
func slug(label string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case !underscore && b.Len() > 0:
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// Close is a no-op; files are closed after every Write.
func (c *CSVWriter) Close() error { return nil }
