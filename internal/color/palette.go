package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// PaletteColor is a named reference color used for matching detected colors.
type PaletteColor struct {
	Name    string
	R, G, B uint8
}

// Palette is the fixed set of clothing-related colors the detector can
// report. Every name here belongs to exactly one group in groups.go, except
// a few off-palette tones that stay ungrouped on purpose.
var Palette = []PaletteColor{
	// Neutrals.
	{"Black", 0, 0, 0},
	{"White", 255, 255, 255},
	{"DarkGray", 105, 105, 105},
	{"LightGray", 211, 211, 211},
	{"Charcoal", 54, 69, 79},
	{"Gainsboro", 220, 220, 220},
	{"Gray", 128, 128, 128},
	{"Silver", 192, 192, 192},
	{"DimGray", 105, 105, 105},
	{"SlateGray", 112, 128, 144},
	{"Ivory", 255, 255, 240},
	{"Beige", 245, 245, 220},
	{"Snow", 255, 250, 250},

	// Reds.
	{"Red", 255, 0, 0},
	{"Maroon", 128, 0, 0},
	{"Crimson", 220, 20, 60},
	{"DarkRed", 139, 0, 0},
	{"FireBrick", 178, 34, 34},
	{"IndianRed", 205, 92, 92},
	{"LightCoral", 240, 128, 128},

	// Pinks and magentas.
	{"Pink", 255, 192, 203},
	{"LightPink", 255, 182, 193},
	{"HotPink", 255, 105, 180},
	{"DeepPink", 255, 20, 147},
	{"Salmon", 250, 128, 114},
	{"Magenta", 255, 0, 255},
	{"MediumVioletRed", 199, 21, 133},
	{"PaleVioletRed", 219, 112, 147},

	// Purples.
	{"Purple", 128, 0, 128},
	{"Lavender", 230, 230, 250},
	{"Plum", 221, 160, 221},
	{"Orchid", 218, 112, 214},
	{"Violet", 238, 130, 238},
	{"DarkPurple", 75, 0, 130},
	{"Eggplant", 97, 64, 81},
	{"DarkViolet", 148, 0, 211},
	{"BlueViolet", 138, 43, 226},
	{"RebeccaPurple", 102, 51, 153},
	{"MediumPurple", 147, 112, 219},

	// Blues.
	{"Blue", 0, 0, 255},
	{"Navy", 0, 0, 128},
	{"LightBlue", 173, 216, 230},
	{"SkyBlue", 135, 206, 235},
	{"MidnightBlue", 25, 25, 112},
	{"CadetBlue", 95, 158, 160},
	{"RoyalBlue", 65, 105, 225},
	{"DenimBlue", 67, 89, 100},
	{"SlateBlue", 106, 90, 205},
	{"SteelBlue", 70, 130, 180},
	{"DodgerBlue", 30, 144, 255},
	{"DeepSkyBlue", 0, 191, 255},
	{"PowderBlue", 176, 224, 230},
	{"LightSteelBlue", 176, 196, 222},
	{"MediumBlue", 0, 0, 205},

	// Greens and olives.
	{"Green", 0, 128, 0},
	{"LimeGreen", 50, 205, 50},
	{"DarkGreen", 0, 100, 0},
	{"ForestGreen", 34, 139, 34},
	{"PaleGreen", 152, 251, 152},
	{"SeaGreen", 46, 139, 87},
	{"MintGreen", 152, 255, 152},
	{"MediumSeaGreen", 60, 179, 113},
	{"LightGreen", 144, 238, 144},
	{"Olive", 128, 128, 0},
	{"Khaki", 195, 176, 145},
	{"DarkOliveGreen", 85, 107, 47},
	{"YellowGreen", 154, 205, 50},

	// Yellows.
	{"Yellow", 255, 255, 0},
	{"LightYellow", 255, 255, 224},
	{"Gold", 255, 215, 0},
	{"Goldenrod", 218, 165, 32},
	{"LemonChiffon", 255, 250, 205},

	// Oranges.
	{"Orange", 255, 165, 0},
	{"Coral", 255, 127, 80},
	{"DarkOrange", 255, 140, 0},
	{"PeachPuff", 255, 218, 185},
	{"LightSalmon", 255, 160, 122},

	// Browns and tans.
	{"Brown", 139, 69, 19},
	{"Tan", 210, 180, 140},
	{"Chocolate", 210, 105, 30},
	{"BurlyWood", 222, 184, 135},
	{"Sienna", 160, 82, 45},
	{"RosyBrown", 188, 143, 143},
	{"Peru", 205, 133, 63},
}

// Closest returns the palette color name perceptually nearest to the given
// RGB value, measured as CIEDE2000 distance in Lab space.
func Closest(r, g, b uint8) string {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}

	best := Palette[0].Name
	bestDist := math.MaxFloat64
	for _, p := range Palette {
		c := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
		if d := target.DistanceCIEDE2000(c); d < bestDist {
			bestDist = d
			best = p.Name
		}
	}
	return best
}
