package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Unknown is rendered for absent or unparseable dates.
const Unknown = "Unknown"

const (
	shortLayout = "2006-01-02"
	fullLayout  = "2006-01-02 15:04:05"
)

// zoned layouts carry their own offset.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	time.RFC1123,
	time.RFC1123Z,
	"02 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 MST",
}

// localLayouts have no offset and are read in the display location.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Date-only forms are UTC midnight, like ISO date-only strings in browsers.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

var timestampRun = regexp.MustCompile(`[0-9TZ:\-]+`)

// ShortDate renders raw as YYYY-MM-DD in the local time zone.
// Empty or unparseable input yields "Unknown".
func ShortDate(raw string) string {
	return ShortDateIn(raw, time.Local)
}

// ShortDateIn is ShortDate rendered in loc.
func ShortDateIn(raw string, loc *time.Location) string {
	t, ok := parse(raw, loc)
	if !ok {
		return Unknown
	}
	return t.In(loc).Format(shortLayout)
}

// FullDate renders raw as YYYY-MM-DD HH:MM:SS in the local time zone.
//
// Before parsing, only the first run of digits, 'T', 'Z', ':' and '-' is
// kept, which drops fractional seconds and trailing offsets. Empty input
// yields "Unknown"; input that still fails to parse is returned unchanged.
func FullDate(raw string) string {
	return FullDateIn(raw, time.Local)
}

// FullDateIn is FullDate rendered in loc.
func FullDateIn(raw string, loc *time.Location) string {
	if strings.TrimSpace(raw) == "" {
		return Unknown
	}

	cleaned := raw
	if m := timestampRun.FindString(raw); m != "" {
		cleaned = m
	}

	t, ok := parse(cleaned, loc)
	if !ok {
		return raw
	}
	return t.In(loc).Format(fullLayout)
}

// FormatLength renders a length in seconds as m:ss, or "Unknown" when the
// length is not known.
func FormatLength(seconds int, ok bool) string {
	if !ok {
		return Unknown
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func parse(raw string, loc *time.Location) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	for _, layout := range dateOnlyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
