package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

const isoDate = "2006-01-02"

// Streaks finds runs of consecutive UTC calendar days with at least one
// play. The current streak only counts if the last listening day is today
// or yesterday relative to now.
func Streaks(events []streaming.Event, now time.Time) StreakInfo {
	var dates []string
	for _, day := range GetDailyListening(events) {
		dates = append(dates, day.Date)
	}
	if len(dates) == 0 {
		return StreakInfo{}
	}
	// Fixed-width ISO dates sort chronologically.
	sort.Strings(dates)

	var info StreakInfo
	runStart := dates[0]
	run := 1
	for i := 1; i < len(dates); i++ {
		if daysBetween(dates[i-1], dates[i]) == 1 {
			run++
			continue
		}
		info.record(run, runStart, dates[i-1])
		runStart = dates[i]
		run = 1
	}
	// A run that reaches the last date is only recorded here.
	info.record(run, runStart, dates[len(dates)-1])

	last := dates[len(dates)-1]
	today := now.UTC().Format(isoDate)
	yesterday := now.UTC().AddDate(0, 0, -1).Format(isoDate)
	if last == today || last == yesterday {
		info.CurrentStreak = 1
		for i := len(dates) - 2; i >= 0; i-- {
			if daysBetween(dates[i], dates[i+1]) != 1 {
				break
			}
			info.CurrentStreak++
		}
	}

	weeks := math.Max(1, float64(daysBetween(dates[0], last))/7)
	info.TotalDaysListened = len(dates)
	info.AveragePerWeek = math.Round(float64(len(dates))/weeks*10) / 10
	return info
}

func (s *StreakInfo) record(run int, start, end string) {
	if run > s.LongestStreak {
		s.LongestStreak = run
		s.LongestStreakStart = &start
		s.LongestStreakEnd = &end
	}
}

// daysBetween returns the whole number of days from a to b. Both are dates
// produced by GetDailyListening, so parsing can't fail.
func daysBetween(a, b string) int {
	ta, _ := time.Parse(isoDate, a)
	tb, _ := time.Parse(isoDate, b)
	return int(math.Round(tb.Sub(ta).Hours() / 24))
}
