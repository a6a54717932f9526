package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"redfin-finder/models"
	"redfin-finder/utils"
)

// ListingStore persists enriched listings as one JSON object keyed by id.
type ListingStore struct {
	path   string
	logger *utils.Logger
}

// NewListingStore creates a store backed by the file at path.
func NewListingStore(path string, logger *utils.Logger) *ListingStore {
	return &ListingStore{path: path, logger: logger}
}

// Path returns the backing file location.
func (s *ListingStore) Path() string { return s.path }

// Load reads the store. A missing, unreadable or malformed file yields an
// empty map; individually malformed entries are skipped with a warning.
func (s *ListingStore) Load() map[string]*models.Listing {
	out := make(map[string]*models.Listing)

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return out
	}
	if err != nil {
		s.logger.Warn("[store] Could not read %s, starting fresh: %v", s.path, err)
		return out
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("[store] Corrupt listings store %s, starting fresh: %v", s.path, err)
		return out
	}

	switch doc.(type) {
	case map[string]any:
		var keyed map[string]json.RawMessage
		_ = json.Unmarshal(data, &keyed)
		for key, raw := range keyed {
			l, err := decodeListing(raw)
			if err != nil {
				s.logger.Warn("[store] Skipping malformed entry %q: %v", key, err)
				continue
			}
			switch {
			case l.ID == "":
				l.ID = key
			case l.ID != key:
				if _, taken := keyed[l.ID]; taken {
					s.logger.Warn("[store] Skipping entry %q: id %q is already stored under its own key", key, l.ID)
					continue
				}
				s.logger.Warn("[store] Entry %q carries id %q, re-keying", key, l.ID)
			}
			out[l.ID] = l
		}
	case []any:
		var legacy []json.RawMessage
		_ = json.Unmarshal(data, &legacy)
		for i, raw := range legacy {
			l, err := decodeListing(raw)
			if err != nil {
				s.logger.Warn("[store] Skipping malformed legacy entry #%d: %v", i, err)
				continue
			}
			if l.ID == "" {
				continue
			}
			out[l.ID] = l
		}
		s.logger.Info("[store] Migrated legacy list store (%d listings)", len(out))
	default:
		s.logger.Warn("[store] Unexpected document in %s, starting fresh", s.path)
	}
	return out
}

// legacyID covers records written before listings carried an "id" field.
type legacyID struct {
	ZPID any `json:"zpid"`
}

var errEmptyEntry = errors.New("empty entry")

func decodeListing(raw json.RawMessage) (*models.Listing, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, errEmptyEntry
	}
	var l models.Listing
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, err
	}
	if l.ID == "" {
		var legacy legacyID
		if err := json.Unmarshal(raw, &legacy); err == nil {
			switch v := legacy.ZPID.(type) {
			case string:
				l.ID = v
			case float64:
				l.ID = fmt.Sprintf("%.0f", v)
			}
		}
	}
	return &l, nil
}

// Save writes store to a temp file beside the target, syncs it and renames
// it into place. On failure the previous file is left untouched.
func (s *ListingStore) Save(store map[string]*models.Listing) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".listings-*.tmp")
	if err != nil {
		return fmt.Errorf("store: create temp: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("store: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("store: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}

// Merge inserts or overwrites each listing by id.
func Merge(store map[string]*models.Listing, listings []*models.Listing) {
	for _, l := range listings {
		store[l.ID] = l
	}
}

// StaleIDs returns the stored ids missing from active, sorted.
func StaleIDs(store map[string]*models.Listing, active utils.IDSet) []string {
	var stale []string
	for id := range store {
		if !active.Contains(id) {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	return stale
}

// Prune deletes every id in stale and returns how many were present.
func Prune(store map[string]*models.Listing, stale []string) int {
	n := 0
	for _, id := range stale {
		if _, ok := store[id]; ok {
			delete(store, id)
			n++
		}
	}
	return n
}

// SortedByScore returns the listings ordered by descending score, ties
// broken by id.
func SortedByScore(store map[string]*models.Listing) []*models.Listing {
	out := make([]*models.Listing, 0, len(store))
	for _, l := range store {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := out[i].ScoreValue(), out[j].ScoreValue()
		if si != sj {
			return si > sj
		}
		return out[i].ID < out[j].ID
	})
	return out
}
