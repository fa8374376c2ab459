package tui

import (
	"fmt"
	"strings"

	"github.com/handiism/beatmap-browser/internal/dates"
	"github.com/handiism/beatmap-browser/internal/difficulty"
	"github.com/handiism/beatmap-browser/internal/download"
	"github.com/handiism/beatmap-browser/internal/mirror"
	"github.com/handiism/beatmap-browser/internal/model"
	"github.com/handiism/beatmap-browser/internal/route"
	"github.com/handiism/beatmap-browser/internal/selection"
)

// maxGlyphs is how many difficulty glyphs a list row shows before "+N".
const maxGlyphs = 12

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("osu! beatmap browser"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Download path: %s", m.settings.DownloadsPath)))
	b.WriteString("\n\n")

	switch m.router.Current().Kind {
	case route.KindAbout:
		b.WriteString(m.viewAbout())
	case route.KindDMCA:
		b.WriteString(m.viewDMCA())
	case route.KindNotFound:
		b.WriteString(m.viewNotFound())
	default:
		b.WriteString(m.viewIndex())
	}

	// Footer
	if logs := m.renderLogs(); logs != "" {
		b.WriteString("\n")
		if m.downloading {
			b.WriteString(m.progress.View())
			b.WriteString("\n")
		}
		b.WriteString(logs)
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewIndex() string {
	var b strings.Builder

	state := m.resolver.State()
	switch state.Phase {
	case selection.Resolving:
		b.WriteString(boxStyle.Render(m.spinner.View() + " Loading…"))
		b.WriteString("\n")
		return b.String()
	case selection.Open:
		b.WriteString(m.viewOverlay(state.Item))
		return b.String()
	}

	b.WriteString(m.search.View())
	b.WriteString("\n")
	if m.focus == FocusJump {
		b.WriteString(subtitleStyle.Render("Jump to beatmap set: "))
		b.WriteString(m.jump.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	snap := m.fetcher.Snapshot()
	switch {
	case snap.Loading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading..."))
		b.WriteString("\n")
	case snap.Err != nil:
		b.WriteString(errorStyle.Render("✗ Failed to load beatmap sets:"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  %s\n\n", snap.Err.Error()))
		b.WriteString(infoStyle.Render("Press r to retry"))
		b.WriteString("\n")
	case len(snap.Items) == 0:
		b.WriteString(warningStyle.Render("No Results"))
		b.WriteString("\n")
	default:
		b.WriteString(m.viewList(snap.Items))
	}

	return b.String()
}

func (m Model) viewList(items []*model.BeatmapSet) string {
	var b strings.Builder

	// Keep the cursor on screen; every set takes two lines
	visible := len(items)
	if m.height > 0 {
		visible = max(1, (m.height-12)/2)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(len(items), start+visible)

	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(items[i], i == m.cursor && m.focus == FocusList))
	}
	if end < len(items) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(items)-end)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderRow(set *model.BeatmapSet, selected bool) string {
	var b strings.Builder

	title := fmt.Sprintf("%s - %s", set.DisplayArtist(), set.DisplayTitle())
	marker := "  "
	if selected {
		marker = "› "
		title = selectedStyle.Render(title)
	}

	b.WriteString(marker)
	b.WriteString(badge(set.Status))
	b.WriteString(" ")
	b.WriteString(title)
	if set.HasVideo {
		b.WriteString(" ▶")
	}
	if set.HasStoryboard {
		b.WriteString(" ✦")
	}
	b.WriteString("\n    ")

	b.WriteString(dimStyle.Render(fmt.Sprintf("mapped by %s · ♥ %d · ▷ %d · %s ",
		set.Creator, set.FavouriteCount, set.PlayCount, dates.ShortDate(set.RankedDate))))

	sorted := difficulty.SortVariants(set.Beatmaps)
	for i, bm := range sorted {
		if i == maxGlyphs {
			b.WriteString(dimStyle.Render(fmt.Sprintf("+%d", len(sorted)-maxGlyphs)))
			break
		}
		b.WriteString(diffGlyph(bm))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewOverlay(set *model.BeatmapSet) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(set.DisplayTitle()))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(set.DisplayArtist()))
	b.WriteString("  ")
	b.WriteString(badge(set.Status))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("mapped by %s\n", set.Creator))
	b.WriteString(fmt.Sprintf("submitted %s (%s)\n", dates.ShortDate(set.SubmittedDate), dates.FullDate(set.SubmittedDate)))
	if set.RankedDate != "" {
		b.WriteString(fmt.Sprintf("ranked %s (%s)\n", dates.ShortDate(set.RankedDate), dates.FullDate(set.RankedDate)))
	}
	b.WriteString("\n")

	// Difficulty chips
	sorted := difficulty.SortVariants(set.Beatmaps)
	bm, ok := m.selectedBeatmap(set)
	for i, v := range sorted {
		b.WriteString(diffChip(v, ok && i == min(m.diffIndex, len(sorted)-1)))
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	if ok {
		b.WriteString(fmt.Sprintf("%s  ★ %.2f\n", selectedStyle.Render(bm.Version), bm.Rating))
		b.WriteString(fmt.Sprintf("BPM %g · Length %s · Max combo %d\n",
			bm.BPM, dates.FormatLength(bm.TotalLength, bm.HasLength), bm.MaxCombo))
		b.WriteString(fmt.Sprintf("Circles %d · Sliders %d · Spinners %d\n",
			bm.CountCircles, bm.CountSliders, bm.CountSpinners))
		b.WriteString(fmt.Sprintf("HP %g · OD %g · AR %g · CS %g\n", bm.Drain, bm.Accuracy, bm.AR, bm.CS))
		if bm.HasPassCount {
			b.WriteString(dimStyle.Render(fmt.Sprintf("%d plays, %d passes", bm.PlayCount, bm.PassCount)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if set.HasRating {
		b.WriteString(fmt.Sprintf("User rating: %.2f\n", set.Rating))
	}
	b.WriteString(fmt.Sprintf("Genre: %s · Language: %s\n", set.Genre(), set.Language()))
	if set.Source != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", set.Source))
	}
	if tags := set.TagList(); len(tags) > 0 {
		b.WriteString(dimStyle.Render("Tags: " + strings.Join(tags, ", ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(mirror.WebURL(set.ID)))
	b.WriteString("\n")
	if set.DownloadDisabled {
		b.WriteString(warningStyle.Render("Download disabled"))
	} else {
		b.WriteString(infoStyle.Render(m.backend.DownloadURL(set.ID, m.settings.NoVideo)))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(mirror.DirectURL(set.ID)))
	}
	b.WriteString("\n")

	return boxStyle.Render(b.String()) + "\n"
}

func (m Model) viewAbout() string {
	return boxStyle.Render(
		"Browse osu! beatmap sets from a mirror, open any set by id,\n"+
			"and download archives, covers and audio previews.\n\n"+
			"Beatmap data and files belong to their mappers and artists.",
	) + "\n"
}

func (m Model) viewDMCA() string {
	return boxStyle.Render(
		"Beatmap sets are served by the configured mirror.\n"+
			"Takedown requests go to the mirror operator; this client\n"+
			"stores nothing besides the files you download.",
	) + "\n"
}

func (m Model) viewNotFound() string {
	return errorStyle.Render(fmt.Sprintf("Nothing at %s", m.router.Path())) + "\n"
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		style := dimStyle
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.router.Current().Kind {
	case route.KindAbout, route.KindDMCA, route.KindNotFound:
		return "esc: back • q: quit"
	}

	switch m.resolver.State().Phase {
	case selection.Open:
		return "←/→: difficulty • d: download • esc: close"
	case selection.Resolving:
		return "esc: close"
	}

	switch m.focus {
	case FocusSearch:
		return "enter: search • tab: results • ctrl+c: quit"
	case FocusJump:
		return "enter: open • esc: cancel"
	}
	if m.fetcher.Snapshot().Err != nil {
		return "r: retry • /: search • q: quit"
	}
	return "↑/↓: move • enter: open • g: go to id • d: download • /: search • a: about • q: quit"
}
