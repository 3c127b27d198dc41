// Package state persists per-retailer baselines and per-search seen-listing
// sets as a single JSON snapshot across runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
)

// Store holds the tracker state for one process run. It is owned by the
// single run loop; no locking is done here.
type Store struct {
	path string

	baselines map[string]float64
	seen      map[string]map[string]struct{}
	seenOrder map[string][]string

	// MaxSeenPerSearch optionally caps each search's seen set, trimming the
	// oldest identifiers on save. Zero means unlimited, which is the default
	// and the documented behavior.
	MaxSeenPerSearch int
}

// snapshot is the persisted layout:
// {"retailers": {id: baseline}, "searches": {id: {"seen": [...]}}}
type snapshot struct {
	Retailers map[string]float64     `json:"retailers"`
	Searches  map[string]seenEntries `json:"searches"`
}

type seenEntries struct {
	Seen []string `json:"seen"`
}

// Load reads the snapshot at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	s := &Store{
		path:      path,
		baselines: make(map[string]float64),
		seen:      make(map[string]map[string]struct{}),
		seenOrder: make(map[string][]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}

	for id, baseline := range snap.Retailers {
		s.baselines[id] = baseline
	}
	for id, entry := range snap.Searches {
		set := make(map[string]struct{}, len(entry.Seen))
		order := make([]string, 0, len(entry.Seen))
		for _, listingID := range entry.Seen {
			if _, dup := set[listingID]; dup {
				continue
			}
			set[listingID] = struct{}{}
			order = append(order, listingID)
		}
		s.seen[id] = set
		s.seenOrder[id] = order
	}

	return s, nil
}

// Save writes the snapshot atomically (temp file + rename) so a crash never
// leaves a truncated state file behind.
func (s *Store) Save() error {
	snap := snapshot{
		Retailers: s.baselines,
		Searches:  make(map[string]seenEntries, len(s.seen)),
	}
	for id := range s.seen {
		order := s.seenOrder[id]
		if s.MaxSeenPerSearch > 0 && len(order) > s.MaxSeenPerSearch {
			dropped := order[:len(order)-s.MaxSeenPerSearch]
			order = order[len(order)-s.MaxSeenPerSearch:]
			for _, listingID := range dropped {
				delete(s.seen[id], listingID)
			}
			s.seenOrder[id] = order
		}
		entry := make([]string, len(order))
		copy(entry, order)
		snap.Searches[id] = seenEntries{Seen: entry}
	}

	data, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// GetBaseline returns the recorded baseline for a retailer, if any.
func (s *Store) GetBaseline(retailerID string) (float64, bool) {
	baseline, ok := s.baselines[retailerID]
	return baseline, ok
}

// SetBaseline records the latest observed price for a retailer.
func (s *Store) SetBaseline(retailerID string, price float64) {
	s.baselines[retailerID] = price
}

// HasSeen reports whether a listing identifier was already alerted on for a
// search.
func (s *Store) HasSeen(searchID, listingID string) bool {
	_, ok := s.seen[searchID][listingID]
	return ok
}

// MarkSeen records a listing identifier for a search. Idempotent.
func (s *Store) MarkSeen(searchID, listingID string) {
	set, ok := s.seen[searchID]
	if !ok {
		set = make(map[string]struct{})
		s.seen[searchID] = set
	}
	if _, dup := set[listingID]; dup {
		return
	}
	set[listingID] = struct{}{}
	s.seenOrder[searchID] = append(s.seenOrder[searchID], listingID)
}

// SeenCount returns the size of a search's seen set.
func (s *Store) SeenCount(searchID string) int {
	return len(s.seen[searchID])
}

// RetailerIDs returns the retailer identifiers with a recorded baseline,
// sorted for deterministic logging.
func (s *Store) RetailerIDs() []string {
	ids := make([]string, 0, len(s.baselines))
	for id := range s.baselines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
