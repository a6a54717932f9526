package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"redfin-finder/models"
	"redfin-finder/utils"
)

// PostgresWriter mirrors the listing store into a PostgreSQL table.
type PostgresWriter struct {
	db     *sql.DB
	logger *utils.Logger
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(ctx context.Context, dsn string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	ping := utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second, Logger: logger}
	if err := ping.Do(ctx, "postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db, logger: logger}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			id                TEXT PRIMARY KEY,
			address           TEXT          NOT NULL,
			town              TEXT,
			url               TEXT          NOT NULL DEFAULT '',
			price             INTEGER       NOT NULL,
			hoa               INTEGER       NOT NULL DEFAULT 0,
			beds              INTEGER,
			baths             NUMERIC(4,1),
			sqft              INTEGER,
			in_unit_laundry   BOOLEAN,
			parking           TEXT          NOT NULL DEFAULT 'Unknown',
			nearest_transit   TEXT,
			drive_transit_min NUMERIC(6,1),
			drive_dest1_min   NUMERIC(6,1),
			drive_dest2_min   NUMERIC(6,1),
			rental_offset     INTEGER,
			net_monthly_cost  NUMERIC(10,2),
			rating_score      NUMERIC(4,2),
			rating_color      TEXT,
			category_scores   JSONB,
			first_seen        TIMESTAMPTZ,
			updated_at        TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_price  ON listings(price);
		CREATE INDEX IF NOT EXISTS idx_listings_town   ON listings(town);
		CREATE INDEX IF NOT EXISTS idx_listings_rating ON listings(rating_score);
	`)
	return err
}

const upsertColumns = 20

var listingColumns = []string{
	"id", "address", "town", "url", "price", "hoa", "beds", "baths", "sqft",
	"in_unit_laundry", "parking", "nearest_transit", "drive_transit_min",
	"drive_dest1_min", "drive_dest2_min", "rental_offset", "net_monthly_cost",
	"rating_score", "rating_color", "category_scores",
}

// Write upserts every listing in batches and deletes rows whose id is no
// longer in the set, all in one transaction.
func (pw *PostgresWriter) Write(ctx context.Context, listings []*models.Listing) error {
	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		query, args, err := buildUpsert(listings[i:end])
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: upsert batch: %w", err)
		}
	}

	ids := make([]string, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE NOT (id = ANY($1))`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("postgres: delete stale: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		pw.logger.Debug("[postgres] Removed %d stale rows", n)
	}
	return nil
}

func buildUpsert(batch []*models.Listing) (string, []any, error) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*(upsertColumns+1))

	for idx, l := range batch {
		base := idx * (upsertColumns + 1)
		ph := make([]string, 0, upsertColumns+1)
		for c := 1; c <= upsertColumns+1; c++ {
			ph = append(ph, fmt.Sprintf("$%d", base+c))
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")

		var cats any
		if l.CategoryScores != nil {
			b, err := json.Marshal(l.CategoryScores)
			if err != nil {
				return "", nil, fmt.Errorf("postgres: encode categories for %s: %w", l.ID, err)
			}
			cats = string(b)
		}
		var firstSeen any
		if !l.FirstSeen.IsZero() {
			firstSeen = l.FirstSeen
		}
		var color any
		if l.Color != "" {
			color = l.Color
		}
		var transit any
		if l.NearestTransit != "" {
			transit = l.NearestTransit
		}
		valueArgs = append(valueArgs,
			l.ID, l.Address, l.Town, l.URL, l.Price, l.HOA, l.Beds, l.Baths, l.Sqft,
			l.InUnitLaundry, l.Parking, transit, l.DriveTransitMin,
			l.DriveDest1Min, l.DriveDest2Min, l.RentalOffset, l.NetMonthlyCost,
			l.Score, color, cats, firstSeen)
	}

	updates := make([]string, 0, len(listingColumns)-1)
	for _, col := range listingColumns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	updates = append(updates, "updated_at = NOW()")

	query := fmt.Sprintf(`
		INSERT INTO listings (%s, first_seen)
		VALUES %s
		ON CONFLICT (id) DO UPDATE SET %s
	`, strings.Join(listingColumns, ", "), strings.Join(valueStrings, ","), strings.Join(updates, ", "))
	return query, valueArgs, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
