package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/handiism/beatmap-browser/internal/dates"
	"github.com/handiism/beatmap-browser/internal/difficulty"
	"github.com/handiism/beatmap-browser/internal/mirror"
	"github.com/handiism/beatmap-browser/internal/model"
)

var bold = color.New(color.Bold)

var statusColors = map[model.Status]*color.Color{
	model.StatusRanked:    color.New(color.FgGreen),
	model.StatusApproved:  color.New(color.FgBlue),
	model.StatusQualified: color.New(color.FgYellow),
	model.StatusLoved:     color.New(color.FgMagenta),
	model.StatusPending:   color.New(color.Faint),
	model.StatusGraveyard: color.New(color.Faint),
}

func statusLabel(s model.Status) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(s.Label())
	}
	return s.Label()
}

// stars renders a rating in its difficulty colour.
func stars(rating float64) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(string(difficulty.RatingToColor(rating))))
	return style.Render(strconv.FormatFloat(rating, 'f', 2, 64))
}

func starRange(beatmaps []model.Beatmap) string {
	sorted := difficulty.SortVariants(beatmaps)
	if len(sorted) == 0 {
		return "-"
	}
	lo, hi := sorted[0].Rating, sorted[len(sorted)-1].Rating
	if len(sorted) == 1 || lo == hi {
		return stars(lo) + "★"
	}
	return stars(lo) + "-" + stars(hi) + "★"
}

// listDate is the date shown next to a set in listings.
func listDate(set *model.BeatmapSet) string {
	switch {
	case set.RankedDate != "":
		return set.RankedDate
	case set.LastUpdated != "":
		return set.LastUpdated
	default:
		return set.SubmittedDate
	}
}

func printSets(w io.Writer, sets []*model.BeatmapSet) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("STATUS"), bold.Sprint("SONG"), bold.Sprint("MAPPER"), bold.Sprint("STARS"), bold.Sprint("DATE"))
	for _, set := range sets {
		tbl.AddRow(
			set.ID,
			statusLabel(set.Status),
			set.DisplayArtist()+" - "+set.DisplayTitle(),
			set.Creator,
			starRange(set.Beatmaps),
			dates.ShortDate(listDate(set)),
		)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printSet(w io.Writer, set *model.BeatmapSet, downloadURL string) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 80

	row := func(k string, v any) { tbl.AddRow(bold.Sprint(k), v) }
	row("Set", set.ID)
	row("Title", set.DisplayTitle())
	row("Artist", set.DisplayArtist())
	row("Mapper", set.Creator)
	row("Status", statusLabel(set.Status))
	row("Submitted", dates.FullDate(set.SubmittedDate))
	if set.RankedDate != "" {
		row("Ranked", dates.FullDate(set.RankedDate))
	}
	row("Updated", dates.FullDate(set.LastUpdated))
	row("Favourites", set.FavouriteCount)
	row("Plays", set.PlayCount)
	row("BPM", strconv.FormatFloat(set.BPM, 'f', -1, 64))
	if set.HasRating {
		row("Rating", strconv.FormatFloat(set.Rating, 'f', 2, 64))
	}
	row("Genre", model.GenreName(set.GenreID))
	row("Language", model.LanguageName(set.LanguageID))
	if set.Source != "" {
		row("Source", set.Source)
	}
	if set.Tags != "" {
		row("Tags", set.Tags)
	}
	row("Video", yesNo(set.HasVideo))
	row("Storyboard", yesNo(set.HasStoryboard))
	if set.DownloadDisabled {
		row("Download", color.New(color.FgRed).Sprint("disabled"))
	} else {
		row("Download", downloadURL)
	}
	row("Web", mirror.WebURL(set.ID))
	row("osu!direct", mirror.DirectURL(set.ID))
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w)

	diffs := uitable.New()
	diffs.Separator = "  "
	diffs.AddRow("", bold.Sprint("DIFFICULTY"), bold.Sprint("MODE"), bold.Sprint("STARS"), bold.Sprint("LENGTH"),
		bold.Sprint("CS"), bold.Sprint("AR"), bold.Sprint("OD"), bold.Sprint("HP"), bold.Sprint("COMBO"))
	for _, bm := range difficulty.SortVariants(set.Beatmaps) {
		diffs.AddRow(
			difficulty.Glyph(bm.Mode),
			bm.Version,
			bm.Mode,
			stars(bm.Rating),
			dates.FormatLength(bm.TotalLength, bm.HasLength),
			bm.CS, bm.AR, bm.Accuracy, bm.Drain,
			bm.MaxCombo,
		)
	}
	_, _ = fmt.Fprintln(w, diffs)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// setSummary is the machine readable form of a beatmap set.
type setSummary struct {
	ID           int64         `json:"id" yaml:"id"`
	Artist       string        `json:"artist" yaml:"artist"`
	Title        string        `json:"title" yaml:"title"`
	Creator      string        `json:"creator" yaml:"creator"`
	Status       string        `json:"status" yaml:"status"`
	Date         string        `json:"date" yaml:"date"`
	Favourites   int           `json:"favourites" yaml:"favourites"`
	Plays        int           `json:"plays" yaml:"plays"`
	Video        bool          `json:"video" yaml:"video"`
	URL          string        `json:"url" yaml:"url"`
	Difficulties []diffSummary `json:"difficulties" yaml:"difficulties"`
}

type diffSummary struct {
	ID      int64   `json:"id" yaml:"id"`
	Version string  `json:"version" yaml:"version"`
	Mode    string  `json:"mode" yaml:"mode"`
	Stars   float64 `json:"stars" yaml:"stars"`
	Color   string  `json:"color" yaml:"color"`
}

func summarize(set *model.BeatmapSet) setSummary {
	s := setSummary{
		ID:           set.ID,
		Artist:       set.DisplayArtist(),
		Title:        set.DisplayTitle(),
		Creator:      set.Creator,
		Status:       string(set.Status),
		Date:         dates.ShortDate(listDate(set)),
		Favourites:   set.FavouriteCount,
		Plays:        set.PlayCount,
		Video:        set.HasVideo,
		URL:          mirror.WebURL(set.ID),
		Difficulties: []diffSummary{},
	}
	for _, bm := range difficulty.SortVariants(set.Beatmaps) {
		s.Difficulties = append(s.Difficulties, diffSummary{
			ID:      bm.ID,
			Version: bm.Version,
			Mode:    bm.Mode.String(),
			Stars:   bm.Rating,
			Color:   string(difficulty.RatingToColor(bm.Rating)),
		})
	}
	return s
}

func summarizeAll(sets []*model.BeatmapSet) []setSummary {
	out := make([]setSummary, 0, len(sets))
	for _, set := range sets {
		out = append(out, summarize(set))
	}
	return out
}
