package difficulty

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/handiism/beatmap-browser/internal/model"
)

func TestRatingToColor_Boundaries(t *testing.T) {
	tests := []struct {
		rating float64
		want   Color
	}{
		{-1, colors[0]},
		{0, colors[0]},
		{0.1, colors[0]},
		{1.24, colors[0]},
		{1.25, colors[1]},
		{1.99, colors[1]},
		{2, colors[2]},
		{2.5, colors[3]},
		{3.3, colors[4]},
		{4.2, colors[5]},
		{4.9, colors[6]},
		{5.8, colors[7]},
		{6.7, colors[8]},
		{7.7, colors[9]},
		{8.99, colors[9]},
		{9, colors[10]},
		{100, colors[10]},
		{math.NaN(), colors[0]},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, RatingToColor(tt.rating), "rating %v", tt.rating)
	}
}

func TestRatingToColor_Monotonic(t *testing.T) {
	index := func(c Color) int {
		for i, cc := range colors {
			if cc == c {
				return i
			}
		}
		return -1
	}

	prev := 0
	for r := 0.0; r <= 12; r += 0.01 {
		i := index(RatingToColor(r))
		require.GreaterOrEqual(t, i, prev, "bucket went backwards at %v", r)
		prev = i
	}
}

func TestRatingToColor_Table(t *testing.T) {
	require.Len(t, points, 11)
	require.Len(t, colors, 11)
	require.Equal(t, Color("#4290FB"), colors[0])
	require.Equal(t, Color("#000000"), colors[10])
}

func TestSortVariants_Stable(t *testing.T) {
	in := []model.Beatmap{
		{ID: 1, Rating: 5},
		{ID: 2, Rating: 2},
		{ID: 3, Rating: 5},
		{ID: 4, Rating: 2},
		{ID: 5, Rating: 0},
	}

	got := SortVariants(in)

	ids := make([]int64, len(got))
	for i, bm := range got {
		ids[i] = bm.ID
	}
	require.Equal(t, []int64{5, 2, 4, 1, 3}, ids)
	require.Equal(t, int64(1), in[0].ID, "input must not be reordered")
}

func TestSortVariants_InvalidRatingsSortAsZero(t *testing.T) {
	in := []model.Beatmap{
		{ID: 1, Rating: 1.5},
		{ID: 2, Rating: math.NaN()},
		{ID: 3, Rating: 0},
		{ID: 4, Rating: -3},
		{ID: 5, Rating: math.Inf(1)},
	}

	got := SortVariants(in)

	ids := make([]int64, len(got))
	for i, bm := range got {
		ids[i] = bm.ID
	}
	require.Equal(t, []int64{2, 3, 4, 5, 1}, ids)
}

func TestSortVariants_Empty(t *testing.T) {
	require.Empty(t, SortVariants(nil))
}

func TestModeTag(t *testing.T) {
	require.Equal(t, model.ModeStandard, ModeTag(0))
	require.Equal(t, model.ModeTaiko, ModeTag(1))
	require.Equal(t, model.ModeCatch, ModeTag(2))
	require.Equal(t, model.ModeMania, ModeTag(3))
	require.Equal(t, model.ModeStandard, ModeTag(4))
	require.Equal(t, model.ModeStandard, ModeTag(-1))
}

func TestGlyph(t *testing.T) {
	require.Equal(t, Glyph(model.ModeStandard), Glyph(model.Mode(42)))
	require.NotEqual(t, Glyph(model.ModeTaiko), Glyph(model.ModeMania))
}
