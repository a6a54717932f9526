package storage

import (
	"context"

	"redfin-finder/models"
)

// ListingWriter is the interface any export backend must satisfy. Write
// receives the full listing set already sorted by descending score.
type ListingWriter interface {
	Write(ctx context.Context, listings []*models.Listing) error
	Close() error
}
