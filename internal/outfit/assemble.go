// Package outfit assembles outfit suggestions from a pool of eligible
// wardrobe items. The pool is expected to be pre-filtered (owner, occasion,
// season, not washing); this package only partitions, combines, color-checks
// and paginates.
package outfit

import (
	"fmt"
	"strings"

	"github.com/erazemk/garderoba/internal/color"
	"github.com/erazemk/garderoba/internal/model"
)

const (
	// PageSize is the number of outfits per result page.
	PageSize = 6
	// MaxCombinations caps how many valid outfits are collected before
	// enumeration stops.
	MaxCombinations = 600
	// MaxPages caps pagination; requested pages are clamped into [1, MaxPages].
	MaxPages = 100
	// maxRejected caps how many rejected combinations are retained for
	// diagnostics.
	maxRejected = 10
)

// MissingCategoryError is returned when a structurally required garment
// category has no eligible items. It names every missing category at once.
type MissingCategoryError struct {
	Missing []string
}

func (e *MissingCategoryError) Error() string {
	return fmt.Sprintf("cannot generate outfit, missing: %s", strings.Join(e.Missing, ", "))
}

// Rejection records a combination that failed the color check. Internal
// diagnostic data, not part of the API contract.
type Rejection struct {
	Items  []model.Item
	Reason string
}

// Result is one page of generated outfits.
type Result struct {
	Outfits    [][]model.Item `json:"items"`
	TotalPages int            `json:"total_pages"`
	Total      int            `json:"total"`

	Rejected []Rejection `json:"-"`
}

// slots is the eligible pool partitioned by outfit slot.
type slots struct {
	footwear    []model.Item
	bottoms     []model.Item
	tops        []model.Item
	jackets     []model.Item
	accessories []model.Item
}

// partition splits the pool into outfit slots. Categories that never take
// part in an outfit (headwear, dresses, underwear, swimwear) are dropped.
func partition(pool []model.Item) slots {
	var s slots
	for _, item := range pool {
		switch item.Category {
		case model.CategoryFootwear:
			s.footwear = append(s.footwear, item)
		case model.CategoryPants, model.CategoryShorts:
			s.bottoms = append(s.bottoms, item)
		case model.CategoryShirt, model.CategoryTShirt:
			s.tops = append(s.tops, item)
		case model.CategoryJacket:
			s.jackets = append(s.jackets, item)
		case model.CategoryAccessory:
			s.accessories = append(s.accessories, item)
		}
	}
	return s
}

// missing reports which required slots are empty. Jackets are only required
// outside of summer.
func (s slots) missing(summer bool) []string {
	var parts []string
	if len(s.footwear) == 0 {
		parts = append(parts, "footwear")
	}
	if len(s.bottoms) == 0 {
		parts = append(parts, "pants or shorts")
	}
	if len(s.tops) == 0 {
		parts = append(parts, "shirts or t-shirts")
	}
	if !summer && len(s.jackets) == 0 {
		parts = append(parts, "jackets")
	}
	return parts
}

// Generate enumerates valid outfits from the pool and returns the requested
// page. seasons is the season set the pool was queried with; if it includes
// summer wear, the jacket slot is omitted instead of required. page is
// 1-based.
func Generate(pool []model.Item, seasons []string, page int) (*Result, error) {
	summer := false
	for _, s := range seasons {
		if s == model.SeasonSummer {
			summer = true
		}
	}

	s := partition(pool)
	if parts := s.missing(summer); len(parts) > 0 {
		return nil, &MissingCategoryError{Missing: parts}
	}

	// Optional slots carry a trailing nil ("wear nothing in this slot").
	jacketOptions := []*model.Item{nil}
	if !summer {
		jacketOptions = jacketOptions[:0]
		for i := range s.jackets {
			jacketOptions = append(jacketOptions, &s.jackets[i])
		}
	}
	accessoryOptions := make([]*model.Item, 0, len(s.accessories)+1)
	for i := range s.accessories {
		accessoryOptions = append(accessoryOptions, &s.accessories[i])
	}
	accessoryOptions = append(accessoryOptions, nil)

	// Walk the cross-product lazily, color-checking each tuple as it is
	// produced and stopping as soon as the cap is reached. Nothing beyond
	// the capped count is ever materialized.
	var valid [][]model.Item
	var rejected []Rejection

	colors := make([]string, 0, 5)
	for _, shoe := range s.footwear {
		for _, bottom := range s.bottoms {
			for _, top := range s.tops {
				for _, jacket := range jacketOptions {
					for _, accessory := range accessoryOptions {
						combo := make([]model.Item, 0, 5)
						combo = append(combo, shoe, bottom, top)
						if jacket != nil {
							combo = append(combo, *jacket)
						}
						if accessory != nil {
							combo = append(combo, *accessory)
						}

						colors = colors[:0]
						for _, item := range combo {
							colors = append(colors, item.Color)
						}

						if ok, reason := color.ValidateCombination(colors); ok {
							valid = append(valid, combo)
							if len(valid) >= MaxCombinations {
								return paginate(valid, rejected, page), nil
							}
						} else if len(rejected) < maxRejected {
							rejected = append(rejected, Rejection{Items: combo, Reason: reason})
						}
					}
				}
			}
		}
	}

	return paginate(valid, rejected, page), nil
}

// paginate slices the capped valid list into the requested page.
func paginate(valid [][]model.Item, rejected []Rejection, page int) *Result {
	total := len(valid)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages > MaxPages {
		totalPages = MaxPages
	}

	if page < 1 {
		page = 1
	}
	if page > MaxPages {
		page = MaxPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Result{
		Outfits:    valid[start:end],
		TotalPages: totalPages,
		Total:      total,
		Rejected:   rejected,
	}
}
