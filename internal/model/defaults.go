package model

import "time"

// Shared defaults used by both the server and TUI binaries.
const (
	DefaultTickInterval = 1 * time.Second
	DefaultFetchTimeout = 10 * time.Second
	DefaultDeadlineKey  = "hackathon-end-time"
	DefaultDataPath     = "/data/hackathon.json"
)

// DefaultEventInfo is used when the document carries no hackathon block.
func DefaultEventInfo() EventInfo {
	return EventInfo{
		Title:    "SIH Internal Hackathon",
		Subtitle: "GEHU Bhimtal",
		Tagline:  "Innovation • Technology • Excellence",
		Dates:    DefaultDates(),
	}
}

// DefaultDates is the canonical two-day option list.
func DefaultDates() []DateOption {
	return []DateOption{
		{Value: "25/8/25", Label: "Day 1 - August 25, 2025"},
		{Value: "26/8/25", Label: "Day 2 - August 26, 2025"},
	}
}
