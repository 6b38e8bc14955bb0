package analysis

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

// ErrConfiguration is returned when a TimeRange can't be applied as given.
var ErrConfiguration = errors.New("invalid time range")

type RangeKind int

const (
	LifetimeKind RangeKind = iota
	Past4Weeks
	Past6Months
	Past1Year
	Year
)

// TimeRange selects which events a view considers. Year is only read when
// Kind is Year; zero means no year was given.
type TimeRange struct {
	Kind  RangeKind
	Year  int
	Label string
}

func LifetimeRange() TimeRange {
	return TimeRange{Kind: LifetimeKind, Label: "Lifetime"}
}

func YearRange(year int) TimeRange {
	return TimeRange{Kind: Year, Year: year, Label: strconv.Itoa(year)}
}

func (r TimeRange) String() string {
	if r.Label != "" {
		return r.Label
	}
	switch r.Kind {
	case Past4Weeks:
		return "Past 4 Weeks"
	case Past6Months:
		return "Past 6 Months"
	case Past1Year:
		return "Past Year"
	case Year:
		return strconv.Itoa(r.Year)
	}
	return "Lifetime"
}

// FilterByTimeRange returns the events inside r, in input order. Relative
// windows are measured back from now.
func FilterByTimeRange(events []streaming.Event, r TimeRange, now time.Time) ([]streaming.Event, error) {
	switch r.Kind {
	case Past4Weeks:
		return since(events, now.AddDate(0, 0, -28)), nil

	case Past6Months:
		return since(events, now.AddDate(0, -6, 0)), nil

	case Past1Year:
		return since(events, now.AddDate(-1, 0, 0)), nil

	case Year:
		if r.Year == 0 {
			return nil, fmt.Errorf("%w: year range without a year", ErrConfiguration)
		}
		var filtered []streaming.Event
		for _, e := range events {
			if e.Year == r.Year {
				filtered = append(filtered, e)
			}
		}
		return filtered, nil

	case LifetimeKind:
		return events, nil
	}

	return nil, fmt.Errorf("%w: unknown kind %d", ErrConfiguration, r.Kind)
}

func since(events []streaming.Event, cutoff time.Time) []streaming.Event {
	var filtered []streaming.Event
	for _, e := range events {
		if !e.Timestamp.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Search keeps events whose track, artist or album contains query,
// ignoring case. An empty query matches everything.
func Search(events []streaming.Event, query string) []streaming.Event {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return events
	}

	var matched []streaming.Event
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Track), query) ||
			strings.Contains(strings.ToLower(e.Artist), query) ||
			strings.Contains(strings.ToLower(e.Album), query) {
			matched = append(matched, e)
		}
	}
	return matched
}

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// ParseTimeRange accepts 4w, 6m, 1y, a four-digit year, or lifetime.
func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "lifetime", "all":
		return LifetimeRange(), nil
	case "4w", "past4weeks":
		return TimeRange{Kind: Past4Weeks, Label: "Past 4 Weeks"}, nil
	case "6m", "past6months":
		return TimeRange{Kind: Past6Months, Label: "Past 6 Months"}, nil
	case "1y", "past1year":
		return TimeRange{Kind: Past1Year, Label: "Past Year"}, nil
	}

	if yearPattern.MatchString(s) {
		year, err := strconv.Atoi(s)
		if err != nil {
			return TimeRange{}, fmt.Errorf("parsing year %q: %w", s, err)
		}
		return YearRange(year), nil
	}

	return TimeRange{}, fmt.Errorf("%w: invalid format %q", ErrConfiguration, s)
}
