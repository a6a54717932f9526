package storage

import (
	"strings"
	"testing"

	"redfin-finder/models"
)

func TestBuildUpsert(t *testing.T) {
	a := fullListing("A")
	b := &models.Listing{ID: "B", Address: "2 Main St", Price: 300000, Parking: models.ParkingUnknown}

	query, args, err := buildUpsert([]*models.Listing{a, b})
	if err != nil {
		t.Fatalf("buildUpsert: %v", err)
	}
	if len(args) != 2*(upsertColumns+1) {
		t.Fatalf("args: got %d, want %d", len(args), 2*(upsertColumns+1))
	}
	if !strings.Contains(query, "ON CONFLICT (id) DO UPDATE SET") {
		t.Errorf("query should upsert by id:\n%s", query)
	}
	if !strings.Contains(query, "$42)") {
		t.Errorf("second row should end at $42:\n%s", query)
	}
	if strings.Contains(query, "id = EXCLUDED.id") {
		t.Error("primary key must not be updated")
	}
	if got := args[19]; got != `{"price":2,"size":3}` {
		t.Errorf("category scores arg: got %v", got)
	}
	if args[upsertColumns+1] != "B" {
		t.Errorf("second row id: got %v", args[upsertColumns+1])
	}
	if args[2*(upsertColumns+1)-2] != nil {
		t.Error("missing category scores should be NULL")
	}
}
