package model

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Outfit is a recognized combination of items worn together.
type Outfit struct {
	ID       int64     `json:"id"`
	OwnerID  int64     `json:"owner_id"`
	ItemIDs  []int64   `json:"item_ids"`
	LastUsed time.Time `json:"last_used"`

	// Joined fields (not always populated). Items referencing deleted
	// garments are simply missing from the slice.
	Items []Item `json:"items,omitempty"`
}

// OutfitKey canonicalizes a set of item ids into the stored comparison key:
// deduplicated, sorted ascending, comma-joined. The same items in any order
// always produce the same key.
func OutfitKey(itemIDs []int64) string {
	seen := make(map[int64]bool, len(itemIDs))
	ids := make([]int64, 0, len(itemIDs))
	for _, id := range itemIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// ParseOutfitKey decodes a stored outfit key back into item ids.
func ParseOutfitKey(key string) []int64 {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
