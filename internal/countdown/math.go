package countdown

import (
	"time"

	"github.com/tinytelemetry/hackboard/internal/model"
)

// ToMilliseconds converts the initial timer duration to milliseconds.
func ToMilliseconds(t model.TimerSpec) int64 {
	return (int64(t.Hours)*3600 + int64(t.Minutes)*60 + int64(t.Seconds)) * 1000
}

// Decompose splits a whole number of seconds into h/m/s. Negative input
// yields zero.
func Decompose(totalSeconds int64) model.Remaining {
	if totalSeconds <= 0 {
		return model.Remaining{}
	}
	return model.Remaining{
		Hours:   int(totalSeconds / 3600),
		Minutes: int(totalSeconds % 3600 / 60),
		Seconds: int(totalSeconds % 60),
	}
}

// RemainingAt computes the time left at now for a deadline, truncated to
// whole seconds and clamped at zero.
func RemainingAt(target, now time.Time) model.Remaining {
	ms := target.UnixMilli() - now.UnixMilli()
	if ms <= 0 {
		return model.Remaining{}
	}
	return Decompose(ms / 1000)
}
