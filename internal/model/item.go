package model

import "time"

// Item represents a single piece of clothing in a user's wardrobe.
type Item struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Category  string    `json:"category"`
	Color     string    `json:"color"`
	Season    string    `json:"season"`
	Occasion  string    `json:"occasion"`
	UsedTimes int       `json:"used_times"`
	Washing   bool      `json:"washing"`
	ImageMime string    `json:"image_mime,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Garment categories, as detected by the classifier service.
const (
	CategoryShirt     = "shirt"
	CategoryTShirt    = "t-shirt"
	CategoryJacket    = "jacket"
	CategoryPants     = "pants"
	CategoryShorts    = "shorts"
	CategoryFootwear  = "footwear"
	CategoryHeadwear  = "headwear"
	CategoryDress     = "dress"
	CategoryUnderwear = "underwear"
	CategoryAccessory = "accessory"
	CategorySwimwear  = "swimwear"
)

// Categories lists every garment category, in classifier label order.
var Categories = []string{
	CategoryShirt, CategoryTShirt, CategoryJacket, CategoryPants,
	CategoryShorts, CategoryFootwear, CategoryHeadwear, CategoryDress,
	CategoryUnderwear, CategoryAccessory, CategorySwimwear,
}

// Season tags. Spring doubles as the all-season tag: generation queries
// always include it alongside the requested season.
const (
	SeasonSummer = "summer wear"
	SeasonWinter = "winter wear"
	SeasonSpring = "spring wear"
)

// Seasons lists every season tag.
var Seasons = []string{SeasonSummer, SeasonWinter, SeasonSpring}

// Occasion tags.
const (
	OccasionCasual     = "casual wear"
	OccasionFormal     = "formal wear"
	OccasionSports     = "sports wear"
	OccasionAllRounder = "all-rounder wear"
)

// Occasions lists every occasion tag.
var Occasions = []string{OccasionCasual, OccasionFormal, OccasionSports, OccasionAllRounder}

// ValidCategory reports whether s is a known garment category.
func ValidCategory(s string) bool { return contains(Categories, s) }

// ValidSeason reports whether s is a known season tag.
func ValidSeason(s string) bool { return contains(Seasons, s) }

// ValidOccasion reports whether s is a known occasion tag.
func ValidOccasion(s string) bool { return contains(Occasions, s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
