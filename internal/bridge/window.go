package bridge

import (
	"time"

	"github.com/hyperifyio/skillbridge/internal/skills"
)

// Result caps for calendar listings.
const (
	dayListCap    = 20
	weekListCap   = 30
	defaultPeriod = "today"
)

// WindowFor maps a relative period phrase to a time window anchored at the
// start of now's day. Unrecognized phrases give an open window with the
// default cap rather than an error.
func WindowFor(phrase string, now time.Time) skills.TimeWindow {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	span := func(fromDays, toDays, max int) skills.TimeWindow {
		min := day.AddDate(0, 0, fromDays)
		end := day.AddDate(0, 0, toDays)
		return skills.TimeWindow{Min: &min, Max: &end, MaxResults: max}
	}
	switch phrase {
	case "today":
		return span(0, 1, dayListCap)
	case "tomorrow":
		return span(1, 2, dayListCap)
	case "this week":
		return span(0, 7, weekListCap)
	case "next week":
		return span(7, 14, weekListCap)
	default:
		return skills.TimeWindow{MaxResults: dayListCap}
	}
}
