package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/beatmap-browser/internal/difficulty"
	"github.com/handiism/beatmap-browser/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF66AA"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF66AA")).
			Padding(1, 2)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	chipStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// badge renders the coloured status label of a set.
func badge(status model.Status) string {
	b := status.Badge()
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Background(lipgloss.Color(b.Background)).
		Foreground(lipgloss.Color(b.Foreground)).
		Render(b.Label)
}

// diffGlyph renders the mode glyph of a difficulty in its rating colour.
func diffGlyph(bm model.Beatmap) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(string(difficulty.RatingToColor(bm.Rating)))).
		Render(difficulty.Glyph(bm.Mode))
}

// diffChip renders a difficulty for the overlay, highlighted when selected.
func diffChip(bm model.Beatmap, selected bool) string {
	color := lipgloss.Color(string(difficulty.RatingToColor(bm.Rating)))
	style := chipStyle.Foreground(color)
	if selected {
		style = chipStyle.Background(color).Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	}
	return style.Render(difficulty.Glyph(bm.Mode) + " " + bm.Version)
}
