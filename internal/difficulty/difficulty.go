package difficulty

import (
	"math"
	"slices"

	"github.com/handiism/beatmap-browser/internal/model"
)

// Color is a hex RGB colour such as "#4290FB".
type Color string

// Star rating breakpoints and the colour each bucket is painted with.
// points[i] pairs with colors[i]; both tables are fixed design constants.
var (
	points = [...]float64{0.1, 1.25, 2, 2.5, 3.3, 4.2, 4.9, 5.8, 6.7, 7.7, 9}
	colors = [...]Color{
		"#4290FB",
		"#4FC0FF",
		"#4FFFD5",
		"#7CFF4F",
		"#F6F05C",
		"#FF8068",
		"#FF4E6F",
		"#C645B8",
		"#6563DE",
		"#18158E",
		"#000000",
	}
)

// RatingToColor maps a star rating to its display colour.
//
// Ratings at or below the first breakpoint get the first colour, ratings at
// or above the last get the last colour. Anything in between gets the colour
// of the highest breakpoint that is <= rating, so each bucket is
// [points[i], points[i+1]).
//
//	RatingToColor(1.24) // "#4290FB"
//	RatingToColor(1.25) // "#4FC0FF"
//	RatingToColor(100)  // "#000000"
func RatingToColor(rating float64) Color {
	if math.IsNaN(rating) || rating <= points[0] {
		return colors[0]
	}
	if rating >= points[len(points)-1] {
		return colors[len(colors)-1]
	}
	for i := 0; i < len(points)-1; i++ {
		if rating >= points[i] && rating < points[i+1] {
			return colors[i]
		}
	}
	return colors[0]
}

// SortVariants returns a copy of beatmaps ordered by ascending star rating.
//
// Missing or invalid ratings (NaN, infinities, negatives) sort as 0. Equal
// ratings keep their input order. The input slice is not modified.
func SortVariants(beatmaps []model.Beatmap) []model.Beatmap {
	sorted := slices.Clone(beatmaps)
	slices.SortStableFunc(sorted, func(a, b model.Beatmap) int {
		ra, rb := sortKey(a.Rating), sortKey(b.Rating)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

func sortKey(rating float64) float64 {
	if math.IsNaN(rating) || math.IsInf(rating, 0) || rating < 0 {
		return 0
	}
	return rating
}

// ModeTag maps a wire mode code to a Mode. Codes other than 0-3 are
// standard.
func ModeTag(code int) model.Mode {
	switch code {
	case 1:
		return model.ModeTaiko
	case 2:
		return model.ModeCatch
	case 3:
		return model.ModeMania
	default:
		return model.ModeStandard
	}
}

var glyphs = map[model.Mode]string{
	model.ModeStandard: "◎",
	model.ModeTaiko:    "◐",
	model.ModeCatch:    "◇",
	model.ModeMania:    "▥",
}

// Glyph returns the single-cell symbol used to draw a difficulty of mode m.
func Glyph(m model.Mode) string {
	if g, ok := glyphs[m]; ok {
		return g
	}
	return glyphs[model.ModeStandard]
}
