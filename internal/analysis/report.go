package analysis

import (
	"fmt"
	"time"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

type ReportConfig struct {
	Range  TimeRange
	Search string

	// Number of top tracks and artists to include.
	Limit int
}

// GenerateReport filters events by the configured range and search, then
// runs every aggregation over the result.
func GenerateReport(events []streaming.Event, cfg ReportConfig, now time.Time) (*Report, error) {
	filtered, err := FilterByTimeRange(events, cfg.Range, now)
	if err != nil {
		return nil, fmt.Errorf("filtering events: %w", err)
	}
	filtered = Search(filtered, cfg.Search)

	report := &Report{
		Metadata: ReportMetadata{
			GeneratedDate: now.Format(isoDate),
			Range:         cfg.Range.String(),
			Search:        cfg.Search,
			TotalEvents:   len(filtered),
		},
		Overview:   Overview(filtered),
		Lifetime:   Lifetime(filtered),
		Streaks:    Streaks(filtered, now),
		TopTracks:  TopTracks(filtered, cfg.Limit, ByTotalMsPlayed),
		TopArtists: TopArtists(filtered, cfg.Limit),
		TimeOfDay:  TimeOfDayBreakdown(filtered),
		DayOfWeek:  DayOfWeekBreakdown(filtered),
		Monthly:    GetMonthlyListening(filtered),
	}

	// Omitted for single-year ranges.
	if cfg.Range.Kind != Year {
		report.YearlyRecaps = YearlyRecaps(filtered)
	}

	return report, nil
}
