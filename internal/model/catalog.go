package model

import "strings"

// Status is the ranking status of a beatmap set.
type Status string

const (
	StatusRanked    Status = "ranked"
	StatusApproved  Status = "approved"
	StatusQualified Status = "qualified"
	StatusLoved     Status = "loved"
	StatusPending   Status = "pending"
	StatusGraveyard Status = "graveyard"
	StatusUnknown   Status = "unknown"
)

// ParseStatus maps a wire status to the closed Status enumeration.
// Anything outside the enumeration is StatusUnknown.
func ParseStatus(s string) Status {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusRanked, StatusApproved, StatusQualified, StatusLoved, StatusPending, StatusGraveyard:
		return st
	default:
		return StatusUnknown
	}
}

// StatusBadge is the label and colours a status is rendered with.
type StatusBadge struct {
	Label      string
	Background string
	Foreground string
}

var statusBadges = map[Status]StatusBadge{
	StatusRanked:    {Label: "RANKED", Background: "#16A34A", Foreground: "#FFFFFF"},
	StatusApproved:  {Label: "APPROVED", Background: "#2563EB", Foreground: "#FFFFFF"},
	StatusQualified: {Label: "QUALIFIED", Background: "#CA8A04", Foreground: "#171717"},
	StatusLoved:     {Label: "LOVED", Background: "#DB2777", Foreground: "#FFFFFF"},
	StatusPending:   {Label: "PENDING", Background: "#A3A3A3", Foreground: "#171717"},
	StatusGraveyard: {Label: "GRAVEYARD", Background: "#525252", Foreground: "#FFFFFF"},
}

var unknownBadge = StatusBadge{Label: "UNKNOWN", Background: "#737373", Foreground: "#FFFFFF"}

// Badge returns the badge for the status, UNKNOWN for anything unlisted.
func (s Status) Badge() StatusBadge {
	if b, ok := statusBadges[s]; ok {
		return b
	}
	return unknownBadge
}

// Label is shorthand for Badge().Label.
func (s Status) Label() string {
	return s.Badge().Label
}

var genres = map[int]string{
	1:  "Unspecified",
	2:  "Video Game",
	3:  "Anime",
	4:  "Rock",
	5:  "Pop",
	6:  "Other",
	7:  "Novelty",
	9:  "Hip Hop",
	10: "Electronic",
}

var languages = map[int]string{
	1:  "Unspecified",
	2:  "English",
	3:  "Japanese",
	4:  "Chinese",
	5:  "Instrumental",
	6:  "Korean",
	7:  "French",
	8:  "German",
	9:  "Swedish",
	10: "Spanish",
	11: "Italian",
	12: "Russian",
	13: "Polish",
}

// GenreName returns the genre for id, or "Unknown".
func GenreName(id int) string {
	if g, ok := genres[id]; ok {
		return g
	}
	return "Unknown"
}

// LanguageName returns the language for id, or "Unknown".
func LanguageName(id int) string {
	if l, ok := languages[id]; ok {
		return l
	}
	return "Unknown"
}
