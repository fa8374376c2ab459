// Package dates turns the loosely shaped timestamps sent by the mirror into
// display strings.
//
// ShortDate and FullDate fail differently on purpose: ShortDate falls back
// to "Unknown", FullDate falls back to the raw input so the user still sees
// whatever the mirror sent.
//
//	dates.ShortDate("2023-05-15T10:00:00Z") // "2023-05-15" (in time.Local)
//	dates.FullDate("not-a-date")            // "not-a-date"
//	dates.FullDate("")                      // "Unknown"
package dates
