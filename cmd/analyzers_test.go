package cmd

import (
	"testing"
	"time"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

// threeDays has one play on each of Jan 1-3 2023 (Sunday to Tuesday).
func threeDays() []streaming.Event {
	start := time.Date(2023, 1, 1, 8, 0, 0, 0, time.UTC)
	return []streaming.Event{
		testEvent(start, "Song A", "Band", 3600000),
		testEvent(start.AddDate(0, 0, 1), "Song B", "Band", 60000),
		testEvent(start.AddDate(0, 0, 2).Add(12*time.Hour), "Song A", "Band", 60000),
	}
}

func row(t *testing.T, a Analysis, i int) []string {
	t.Helper()
	if i >= len(a.results) {
		t.Fatalf("Expected at least %d rows, got %v", i+1, a.results)
	}
	return a.results[i]
}

func TestDailyAnalyzer(t *testing.T) {
	out, err := DailyAnalyzer{}.GetResults(threeDays(), time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if r := row(t, out, 1); r[0] != "2023-01-01" || r[1] != "1h" || r[2] != "1" {
		t.Errorf("Unexpected first day %v", r)
	}
	if out.summary != "Listened on 3 days" {
		t.Errorf("Unexpected summary %q", out.summary)
	}
}

func TestMonthlyAnalyzer(t *testing.T) {
	out, err := MonthlyAnalyzer{}.GetResults(threeDays(), time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(out.results) != 2 {
		t.Fatalf("Expected one month, got %v", out.results)
	}
	if r := row(t, out, 1); r[0] != "2023-01" || r[1] != "1h 2m" || r[2] != "3" {
		t.Errorf("Unexpected month %v", r)
	}
}

func TestYearlyAnalyzers(t *testing.T) {
	events := append(threeDays(), testEvent(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), "New", "Other", 60000))

	out, err := YearlyAnalyzer{}.GetResults(events, time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if r := row(t, out, 1); r[0] != "2024" || r[4] != "New - Other" || r[5] != "Other" {
		t.Errorf("Expected newest year first, got %v", r)
	}
	if r := row(t, out, 2); r[0] != "2023" || r[4] != "Song A - Band" || r[2] != "3" {
		t.Errorf("Unexpected 2023 recap %v", r)
	}

	years, err := YearsAnalyzer{}.GetResults(events, time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(years.results) != 3 || years.results[1][0] != "2024" || years.results[2][0] != "2023" {
		t.Errorf("Unexpected years %v", years.results)
	}
}

func TestOverviewAndLifetimeAnalyzers(t *testing.T) {
	overview, err := OverviewAnalyzer{}.GetResults(threeDays(), time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if r := row(t, overview, 5); r[0] != "First listen" || r[1] != "Jan 1, 2023" {
		t.Errorf("Unexpected first listen row %v", r)
	}
	if r := row(t, overview, 2); r[1] != "62" {
		t.Errorf("Expected 62 minutes, got %v", r)
	}

	empty, err := OverviewAnalyzer{}.GetResults(nil, time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if r := row(t, empty, 5); r[1] != "-" {
		t.Errorf("Expected no first listen, got %v", r)
	}

	lifetime, err := LifetimeAnalyzer{}.GetResults(threeDays(), time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if r := row(t, lifetime, 1); r[1] != "Song A - Band (1h 1m)" {
		t.Errorf("Unexpected most played row %v", r)
	}
	if r := row(t, lifetime, 2); r[1] != "2023-01-01 (1h)" {
		t.Errorf("Unexpected longest day row %v", r)
	}
}

func TestStreakAnalyzer(t *testing.T) {
	now := time.Date(2023, 1, 4, 12, 0, 0, 0, time.UTC)
	out, err := StreakAnalyzer{}.GetResults(threeDays(), now)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if r := row(t, out, 1); r[1] != "3 days" {
		t.Errorf("Expected current streak of 3 days, got %v", r)
	}
	if r := row(t, out, 3); r[1] != "2023-01-01 to 2023-01-03" {
		t.Errorf("Unexpected streak dates %v", r)
	}
	if r := row(t, out, 5); r[1] != "3.0" {
		t.Errorf("Unexpected weekly average %v", r)
	}

	// Two days later the streak is broken.
	out, err = StreakAnalyzer{}.GetResults(threeDays(), now.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if r := row(t, out, 1); r[1] != "0 days" {
		t.Errorf("Expected broken streak, got %v", r)
	}
}

func TestBreakdownAnalyzers(t *testing.T) {
	events := threeDays()

	timeOfDay, err := TimeOfDayAnalyzer{}.GetResults(events, time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(timeOfDay.results) != 5 {
		t.Fatalf("Expected 4 periods, got %v", timeOfDay.results)
	}
	if timeOfDay.summary != "Most listening: Morning (6AM-12PM)" {
		t.Errorf("Unexpected summary %q", timeOfDay.summary)
	}

	hourly, err := HourlyAnalyzer{}.GetResults(events, time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(hourly.results) != 25 {
		t.Fatalf("Expected 24 hours, got %d rows", len(hourly.results)-1)
	}
	if len(hourly.results[0]) != 3 {
		t.Errorf("Expected Hour, Time and Tracks columns only, got %v", hourly.results[0])
	}
	if r := row(t, hourly, 9); r[0] != "08:00" || r[2] != "2" {
		t.Errorf("Unexpected 08:00 row %v", r)
	}
	if hourly.summary != "Peak hour: 08:00" {
		t.Errorf("Unexpected summary %q", hourly.summary)
	}

	days, err := DayOfWeekAnalyzer{}.GetResults(events, time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if r := row(t, days, 1); r[0] != "Sunday" || r[3] != "96.8%" {
		t.Errorf("Unexpected Sunday row %v", r)
	}

	empty, err := DayOfWeekAnalyzer{}.GetResults(nil, time.Now())
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if empty.summary != "No listening data" {
		t.Errorf("Unexpected summary %q", empty.summary)
	}
}
