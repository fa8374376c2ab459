// Package difficulty classifies the difficulties of a beatmap set.
//
// It orders difficulties by star rating, maps a rating to its display colour
// through a fixed breakpoint table, and normalises wire mode codes:
//
//	for _, bm := range difficulty.SortVariants(set.Beatmaps) {
//	    fmt.Println(difficulty.Glyph(bm.Mode), bm.Version, difficulty.RatingToColor(bm.Rating))
//	}
//
// All tables in this package are immutable.
package difficulty
