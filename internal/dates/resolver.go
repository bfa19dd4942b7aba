// Package dates resolves free-text date fragments to ISO calendar dates.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ewisehart/tally/internal/model"
)

// ISO is the output layout for every resolved date.
const ISO = "2006-01-02"

// absoluteFormats are tried in order. Layouts without a year borrow the
// reference year.
var absoluteFormats = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	"Jan 2",
	"January 2",
	"1/2",
}

var daysAgoPattern = regexp.MustCompile(`^(\d+) days? ago$`)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Resolver converts date fragments ("Dec 20, 2024", "12/20/2024",
// "yesterday", "last friday") into ISO dates. Unresolvable fragments map
// to the unknown sentinel; Resolve never errors.
type Resolver struct {
	now func() time.Time
}

// NewResolver returns a resolver anchored to the wall clock.
func NewResolver() *Resolver {
	return &Resolver{now: time.Now}
}

// NewResolverAt returns a resolver with a fixed reference clock.
// Relative terms ("yesterday") resolve against the supplied time.
func NewResolverAt(now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	return &Resolver{now: now}
}

// Resolve maps a free-text fragment to an ISO YYYY-MM-DD string, or the
// unknown sentinel when the fragment cannot be interpreted as a date.
func (r *Resolver) Resolve(fragment string) string {
	s := strings.TrimSpace(fragment)
	s = strings.Trim(s, ".,;:")
	if s == "" {
		return model.Unknown
	}

	// Trailing fragments often arrive as "on <date>" or "last <weekday>".
	lower := strings.ToLower(s)
	lower = strings.TrimPrefix(lower, "on ")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "on "), "On ")

	ref := r.now()

	switch lower {
	case "today", "tonight":
		return ref.Format(ISO)
	case "yesterday":
		return ref.AddDate(0, 0, -1).Format(ISO)
	case "tomorrow":
		return ref.AddDate(0, 0, 1).Format(ISO)
	}

	if m := daysAgoPattern.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return ref.AddDate(0, 0, -n).Format(ISO)
		}
	}

	if name, ok := strings.CutPrefix(lower, "last "); ok {
		if wd, known := weekdays[name]; known {
			return lastWeekday(ref, wd).Format(ISO)
		}
	}
	if wd, known := weekdays[lower]; known {
		return lastWeekday(ref, wd).Format(ISO)
	}

	for _, layout := range absoluteFormats {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = t.AddDate(ref.Year(), 0, 0)
		}
		return t.Format(ISO)
	}

	return model.Unknown
}

// lastWeekday returns the most recent occurrence of wd strictly before ref.
func lastWeekday(ref time.Time, wd time.Weekday) time.Time {
	days := int(ref.Weekday()) - int(wd)
	if days <= 0 {
		days += 7
	}
	return ref.AddDate(0, 0, -days)
}
