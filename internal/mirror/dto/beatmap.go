package dto

import (
	"github.com/handiism/beatmap-browser/internal/difficulty"
	"github.com/handiism/beatmap-browser/internal/model"
)

// Beatmap represents one difficulty as served by the mirror.
type Beatmap struct {
	ID               int64    `json:"id"`
	BeatmapsetID     int64    `json:"beatmapset_id"`
	DifficultyRating *float64 `json:"difficulty_rating"`
	Mode             string   `json:"mode"`
	ModeInt          *int     `json:"mode_int"`
	Version          string   `json:"version"`
	TotalLength      *int     `json:"total_length"`
	HitLength        *int     `json:"hit_length"`
	BPM              float64  `json:"bpm"`
	Accuracy         float64  `json:"accuracy"`
	AR               float64  `json:"ar"`
	CS               float64  `json:"cs"`
	Drain            float64  `json:"drain"`
	CountCircles     int      `json:"count_circles"`
	CountSliders     int      `json:"count_sliders"`
	CountSpinners    int      `json:"count_spinners"`
	MaxCombo         int      `json:"max_combo"`
	PlayCount        int      `json:"playcount"`
	PassCount        *int     `json:"passcount"`
	Checksum         *string  `json:"checksum"`
}

// modeNames maps the textual mode to the numeric code for payloads that
// omit mode_int.
var modeNames = map[string]int{
	"osu":    0,
	"taiko":  1,
	"fruits": 2,
	"mania":  3,
}

// ToBeatmap converts the wire representation to a model.Beatmap.
func (b *Beatmap) ToBeatmap() model.Beatmap {
	code := modeNames[b.Mode]
	if b.ModeInt != nil {
		code = *b.ModeInt
	}

	bm := model.Beatmap{
		ID:            b.ID,
		Mode:          difficulty.ModeTag(code),
		Rating:        deref(b.DifficultyRating),
		Version:       b.Version,
		BPM:           b.BPM,
		Accuracy:      b.Accuracy,
		AR:            b.AR,
		CS:            b.CS,
		Drain:         b.Drain,
		MaxCombo:      b.MaxCombo,
		CountCircles:  b.CountCircles,
		CountSliders:  b.CountSliders,
		CountSpinners: b.CountSpinners,
		PlayCount:     max(0, b.PlayCount),
		Checksum:      deref(b.Checksum),
	}

	// total_length falls back to hit_length, like the mirror's own mapping
	switch {
	case b.TotalLength != nil:
		bm.TotalLength, bm.HasLength = *b.TotalLength, true
	case b.HitLength != nil:
		bm.TotalLength, bm.HasLength = *b.HitLength, true
	}
	if b.HitLength != nil {
		bm.HitLength = *b.HitLength
	}
	if b.PassCount != nil {
		bm.PassCount, bm.HasPassCount = *b.PassCount, true
	}

	return bm
}
