package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	tests := []struct {
		name string
		hour int
		want string
	}{
		{name: "early morning boundary", hour: 5, want: GreetingMorning},
		{name: "late morning", hour: 11, want: GreetingMorning},
		{name: "noon starts the day", hour: 12, want: GreetingDay},
		{name: "mid afternoon", hour: 14, want: GreetingDay},
		{name: "last day hour", hour: 17, want: GreetingDay},
		{name: "evening boundary", hour: 18, want: GreetingEvening},
		{name: "late evening", hour: 22, want: GreetingEvening},
		{name: "night starts at 23", hour: 23, want: GreetingNight},
		{name: "midnight", hour: 0, want: GreetingNight},
		{name: "before dawn", hour: 4, want: GreetingNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := time.Date(2024, 7, 5, tt.hour, 0, 0, 0, time.UTC)
			assert.Equal(t, tt.want, Greeting(ts))
		})
	}
}

func TestGreetingAfternoonScenario(t *testing.T) {
	// 2024-07-05 14:00:00 falls in the day bucket under both the 17:00 and
	// 18:00 boundary conventions.
	ts, err := time.Parse("2006-01-02 15:04:05", "2024-07-05 14:00:00")
	assert.NoError(t, err)
	assert.Equal(t, GreetingDay, Greeting(ts))
}
