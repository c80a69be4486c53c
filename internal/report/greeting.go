package report

import "time"

// Hour-of-day boundaries for greetings. The day/evening boundary follows the
// 18:00 convention; it is a named constant rather than a magic number so a
// deployment preferring 17:00 only changes one value.
const (
	morningStartHour = 5
	dayStartHour     = 12
	eveningStartHour = 18
	nightStartHour   = 23
)

// Greeting labels, bucketed by hour of day.
const (
	GreetingMorning = "Good morning"
	GreetingDay     = "Good afternoon"
	GreetingEvening = "Good evening"
	GreetingNight   = "Good night"
)

// Greeting returns the salutation for the given time of day.
func Greeting(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= morningStartHour && hour < dayStartHour:
		return GreetingMorning
	case hour >= dayStartHour && hour < eveningStartHour:
		return GreetingDay
	case hour >= eveningStartHour && hour < nightStartHour:
		return GreetingEvening
	default:
		return GreetingNight
	}
}
