package model

import "fmt"

// Remaining is the time left until the deadline, split into h/m/s.
type Remaining struct {
	Hours   int
	Minutes int
	Seconds int
}

// TotalSeconds returns the remaining time in whole seconds.
func (r Remaining) TotalSeconds() int64 {
	return int64(r.Hours)*3600 + int64(r.Minutes)*60 + int64(r.Seconds)
}

// IsZero reports whether the countdown has finished.
func (r Remaining) IsZero() bool {
	return r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

// String renders HH:MM:SS with zero padding; hours may exceed two digits.
func (r Remaining) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
}
