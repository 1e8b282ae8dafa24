package core

import (
	"context"
	"sort"
)

// RecentLimit is the number of recipes reported in Stats.Recent.
const RecentLimit = 5

// Stats summarises the collection.
type Stats struct {
	Total      int            `json:"total"`
	Categories int            `json:"categories"`
	ByCategory map[string]int `json:"by_category"`
	Recent     []Recipe       `json:"recent"`
}

// Stats computes collection statistics: totals, per-category counts and the
// most recently created recipes (newest first).
func (s *Store) Stats(ctx context.Context) Stats {
	recipes := s.Load(ctx)

	st := Stats{
		Total:      len(recipes),
		ByCategory: make(map[string]int),
	}
	for _, r := range recipes {
		st.ByCategory[r.Category]++
	}
	st.Categories = len(st.ByCategory)

	recent := append([]Recipe(nil), recipes...)
	// The timestamp layout sorts lexically; ids break ties.
	sort.SliceStable(recent, func(i, j int) bool {
		if recent[i].CreatedAt != recent[j].CreatedAt {
			return recent[i].CreatedAt > recent[j].CreatedAt
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}
	st.Recent = recent

	return st
}
