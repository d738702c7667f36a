package attendance

import "time"

const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusHalfDay = "half_day"
)

// Check-in cut-offs in local wall-clock hours.
const (
	lateHour    = 10
	halfDayHour = 13
)

// HistoryLimit caps how many records a single history listing returns.
const HistoryLimit = 30

// StatusForTime derives the attendance status from the check-in hour:
// before 10:00 counts as present, 10:00 up to 12:59 as late, and anything
// from 13:00 on as a half day.
func StatusForTime(t time.Time) string {
	switch {
	case t.Hour() < lateHour:
		return StatusPresent
	case t.Hour() < halfDayHour:
		return StatusLate
	default:
		return StatusHalfDay
	}
}
