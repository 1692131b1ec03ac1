// Package teams filters the registration list by event day.
package teams

import (
	"strings"

	"github.com/tinytelemetry/hackboard/internal/model"
)

// DayKey returns the day component of a "D/M/Y" date: everything before the
// first slash, or the whole string when there is none.
func DayKey(selectedDate string) string {
	day, _, _ := strings.Cut(strings.TrimSpace(selectedDate), "/")
	return day
}

// Filter returns the teams registered for selectedDate in their original
// order. The result is never nil.
func Filter(all []model.Team, selectedDate string) []model.Team {
	day := DayKey(selectedDate)
	out := make([]model.Team, 0, len(all))
	for _, t := range all {
		if t.Date == day {
			out = append(out, t)
		}
	}
	return out
}

// DisplayDate renders the team's day with the month and year of
// selectedDate, e.g. team "26" under "25/8/25" becomes "26/8/25".
func DisplayDate(team model.Team, selectedDate string) string {
	_, rest, ok := strings.Cut(strings.TrimSpace(selectedDate), "/")
	if !ok {
		return team.Date
	}
	return team.Date + "/" + rest
}

// CountByDay tallies teams per day key.
func CountByDay(all []model.Team) map[string]int {
	counts := make(map[string]int)
	for _, t := range all {
		counts[t.Date]++
	}
	return counts
}
