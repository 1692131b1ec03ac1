package model

import "fmt"

// DateOption is one entry of the date selector.
type DateOption struct {
	Value string // "D/M/Y", e.g. "25/8/25"
	Label string
}

// EventInfo holds the decorative event metadata.
type EventInfo struct {
	Title    string
	Subtitle string
	Tagline  string
	Dates    []DateOption
}

// Team is one registered team. Date is the day-of-month key ("25").
type Team struct {
	ID   int
	Name string
	Date string
}

// TimerSpec is the initial countdown duration read from the data source.
type TimerSpec struct {
	Hours   int
	Minutes int
	Seconds int
}

// Validate reports whether every field is within range.
func (t TimerSpec) Validate() error {
	if t.Hours < 0 {
		return fmt.Errorf("hours must be >= 0, got %d", t.Hours)
	}
	if t.Minutes < 0 || t.Minutes > 59 {
		return fmt.Errorf("minutes must be in [0,59], got %d", t.Minutes)
	}
	if t.Seconds < 0 || t.Seconds > 59 {
		return fmt.Errorf("seconds must be in [0,59], got %d", t.Seconds)
	}
	return nil
}

// Document is the decoded data source.
type Document struct {
	Event EventInfo
	Timer TimerSpec
	Teams []Team
}
