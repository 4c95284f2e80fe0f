// Package color holds the fixed clothing color taxonomy: the palette of
// detectable colors, their semantic groups, and the pairwise rules deciding
// which groups clash in one outfit.
package color

import "fmt"

// groupOrder fixes the iteration order over color groups so that lookups
// and conflict reporting are deterministic.
var groupOrder = []string{
	"Red", "Blue", "Pink", "Purple", "Yellow", "Green", "Orange", "Brown", "Neutrals",
}

// groups maps each semantic color group to the palette colors it contains.
var groups = map[string][]string{
	"Red": {
		"Red", "Maroon", "Crimson", "DarkRed", "FireBrick", "IndianRed", "LightCoral",
	},
	"Blue": {
		"Blue", "Navy", "LightBlue", "SkyBlue", "MidnightBlue", "CadetBlue", "RoyalBlue",
		"DenimBlue", "SlateBlue", "SteelBlue", "DodgerBlue", "DeepSkyBlue",
		"PowderBlue", "LightSteelBlue", "MediumBlue",
	},
	"Pink": {
		"Pink", "LightPink", "HotPink", "DeepPink", "Salmon",
		"Magenta", "MediumVioletRed", "PaleVioletRed",
	},
	"Purple": {
		"Purple", "Lavender", "Plum", "Orchid", "Violet", "DarkPurple",
		"Eggplant", "DarkViolet", "BlueViolet", "RebeccaPurple", "MediumPurple",
	},
	"Yellow": {
		"Yellow", "LightYellow", "Gold", "Goldenrod", "LemonChiffon",
	},
	"Green": {
		"Green", "LimeGreen", "DarkGreen", "ForestGreen", "PaleGreen",
		"SeaGreen", "MintGreen", "MediumSeaGreen", "LightGreen",
		"Olive", "Khaki", "DarkOliveGreen", "YellowGreen",
	},
	"Orange": {
		"Orange", "Coral", "DarkOrange", "PeachPuff", "LightSalmon",
	},
	"Brown": {
		"Brown", "Tan", "Chocolate", "BurlyWood", "Sienna", "RosyBrown", "Peru",
	},
	"Neutrals": {
		"Black", "White", "DarkGray", "LightGray", "Charcoal", "Gainsboro", "Gray", "Silver",
		"DimGray", "SlateGray", "Ivory", "Beige", "Snow",
	},
}

// incompatible lists the unordered group pairs that clash. The relation is
// symmetric; checks must try both orders.
var incompatible = [][2]string{
	{"Red", "Pink"},
	{"Red", "Orange"},
	{"Purple", "Green"},
	{"Green", "Pink"},
	{"Brown", "Gray"},
	{"Yellow", "Pink"},
	{"Purple", "Orange"},
	{"Green", "Orange"},
	{"Pink", "Brown"},
}

// GroupOf returns the semantic group a color name belongs to, or "" if the
// color is not part of any group.
func GroupOf(color string) string {
	for _, group := range groupOrder {
		for _, name := range groups[group] {
			if name == color {
				return group
			}
		}
	}
	return ""
}

// GroupColors returns the color names belonging to a group, or nil for an
// unknown group.
func GroupColors(group string) []string {
	return groups[group]
}

// incompatiblePair reports whether two groups are declared incompatible,
// in either order.
func incompatiblePair(a, b string) bool {
	for _, pair := range incompatible {
		if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
			return true
		}
	}
	return false
}

// ValidateCombination decides whether the given colors can be worn together.
// Colors without a group impose no constraint. The first clashing pair of
// groups, in encounter order, is reported; the scan stops there.
func ValidateCombination(colors []string) (bool, string) {
	var present []string
	seen := make(map[string]bool)
	for _, c := range colors {
		group := GroupOf(c)
		if group == "" || seen[group] {
			continue
		}
		seen[group] = true
		present = append(present, group)
	}

	for i := 0; i < len(present); i++ {
		for j := i + 1; j < len(present); j++ {
			if incompatiblePair(present[i], present[j]) {
				return false, fmt.Sprintf("Conflict between %s and %s colors", present[i], present[j])
			}
		}
	}
	return true, ""
}
