package dates

import (
	"testing"
	"time"

	"github.com/ewisehart/tally/internal/model"
	"github.com/stretchr/testify/assert"
)

// Saturday, March 15 2025.
func fixedClock() time.Time {
	return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestResolverAbsoluteDates(t *testing.T) {
	r := NewResolverAt(fixedClock)

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{name: "iso passthrough", fragment: "2024-12-20", want: "2024-12-20"},
		{name: "short month header", fragment: "Dec 20, 2024", want: "2024-12-20"},
		{name: "long month header", fragment: "December 20, 2024", want: "2024-12-20"},
		{name: "slash date", fragment: "12/20/2024", want: "2024-12-20"},
		{name: "slash date short year", fragment: "12/20/24", want: "2024-12-20"},
		{name: "single digit slash date", fragment: "3/5/2024", want: "2024-03-05"},
		{name: "slash date borrows reference year", fragment: "12/20", want: "2025-12-20"},
		{name: "day first", fragment: "20 Dec 2024", want: "2024-12-20"},
		{name: "no comma", fragment: "Dec 20 2024", want: "2024-12-20"},
		{name: "month day borrows reference year", fragment: "Dec 20", want: "2025-12-20"},
		{name: "leading on", fragment: "on 12/20/2024", want: "2024-12-20"},
		{name: "trailing period", fragment: "Dec 20, 2024.", want: "2024-12-20"},
		{name: "garbage", fragment: "not a date", want: model.Unknown},
		{name: "empty", fragment: "", want: model.Unknown},
		{name: "whitespace only", fragment: "   ", want: model.Unknown},
		{name: "bare number", fragment: "599.52", want: model.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.fragment))
		})
	}
}

func TestResolverRelativeDates(t *testing.T) {
	r := NewResolverAt(fixedClock)

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{name: "today", fragment: "today", want: "2025-03-15"},
		{name: "yesterday", fragment: "yesterday", want: "2025-03-14"},
		{name: "tomorrow", fragment: "tomorrow", want: "2025-03-16"},
		{name: "capitalized yesterday", fragment: "Yesterday", want: "2025-03-14"},
		{name: "three days ago", fragment: "3 days ago", want: "2025-03-12"},
		{name: "one day ago", fragment: "1 day ago", want: "2025-03-14"},
		{name: "last friday", fragment: "last friday", want: "2025-03-14"},
		{name: "last saturday is strictly before", fragment: "last saturday", want: "2025-03-08"},
		{name: "bare weekday", fragment: "monday", want: "2025-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.fragment))
		})
	}
}

func TestResolverDefaultsToWallClock(t *testing.T) {
	r := NewResolver()
	want := time.Now().AddDate(0, 0, -1).Format(ISO)
	assert.Equal(t, want, r.Resolve("yesterday"))

	// Nil clock falls back to the wall clock rather than panicking.
	assert.NotEqual(t, model.Unknown, NewResolverAt(nil).Resolve("today"))
}
