package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

// NoLimit returns every group from TopTracks and TopArtists.
const NoLimit = -1

type SortBy int

const (
	ByTotalMsPlayed SortBy = iota
	ByPlayCount
)

// trackKey groups plays of the same track by the same artist.
type trackKey struct {
	Track  string
	Artist string
}

// TopTracks groups events by (track, artist) and sorts the groups in
// descending order of sortBy. Ties keep first-encounter order.
func TopTracks(events []streaming.Event, limit int, sortBy SortBy) []TrackStats {
	index := make(map[trackKey]int)
	var tracks []TrackStats
	for _, e := range events {
		key := trackKey{Track: e.Track, Artist: e.Artist}
		i, ok := index[key]
		if !ok {
			index[key] = len(tracks)
			tracks = append(tracks, TrackStats{
				Track:         e.Track,
				Artist:        e.Artist,
				Album:         e.Album,
				PlayCount:     1,
				TotalMsPlayed: e.MsPlayed,
			})
			continue
		}
		tracks[i].PlayCount++
		tracks[i].TotalMsPlayed += e.MsPlayed
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		if sortBy == ByPlayCount {
			return tracks[i].PlayCount > tracks[j].PlayCount
		}
		return tracks[i].TotalMsPlayed > tracks[j].TotalMsPlayed
	})

	return truncate(tracks, limit)
}

// TopArtists sorts artists by total time played. Percentage is the
// artist's share of all time played in events.
func TopArtists(events []streaming.Event, limit int) []ArtistStats {
	index := make(map[string]int)
	var artists []ArtistStats
	var totalMs int64
	for _, e := range events {
		totalMs += e.MsPlayed
		i, ok := index[e.Artist]
		if !ok {
			index[e.Artist] = len(artists)
			artists = append(artists, ArtistStats{
				Artist:        e.Artist,
				PlayCount:     1,
				TotalMsPlayed: e.MsPlayed,
			})
			continue
		}
		artists[i].PlayCount++
		artists[i].TotalMsPlayed += e.MsPlayed
	}

	for i := range artists {
		artists[i].Percentage = percentage(artists[i].TotalMsPlayed, totalMs)
	}

	sort.SliceStable(artists, func(i, j int) bool {
		return artists[i].TotalMsPlayed > artists[j].TotalMsPlayed
	})

	return truncate(artists, limit)
}

// GetDailyListening rolls events up by UTC calendar day, ascending.
func GetDailyListening(events []streaming.Event) []DailyListening {
	index := make(map[string]int)
	var days []DailyListening
	for _, e := range events {
		date := dateKey(e)
		i, ok := index[date]
		if !ok {
			index[date] = len(days)
			days = append(days, DailyListening{Date: date})
			i = len(days) - 1
		}
		days[i].MsPlayed += e.MsPlayed
		days[i].TrackCount++
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

func GetMonthlyListening(events []streaming.Event) []MonthlyListening {
	index := make(map[string]int)
	var months []MonthlyListening
	for _, e := range events {
		month := fmt.Sprintf("%d-%02d", e.Year, e.Month)
		i, ok := index[month]
		if !ok {
			index[month] = len(months)
			months = append(months, MonthlyListening{Month: month, Year: e.Year})
			i = len(months) - 1
		}
		months[i].MsPlayed += e.MsPlayed
		months[i].TrackCount++
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})
	return months
}

// AvailableYears returns the distinct years present, newest first.
func AvailableYears(events []streaming.Event) []int {
	seen := make(map[int]bool)
	var years []int
	for _, e := range events {
		if !seen[e.Year] {
			seen[e.Year] = true
			years = append(years, e.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func YearlyRecaps(events []streaming.Event) []YearlyRecap {
	years := AvailableYears(events)
	recaps := make([]YearlyRecap, 0, len(years))
	for _, year := range years {
		var yearEvents []streaming.Event
		for _, e := range events {
			if e.Year == year {
				yearEvents = append(yearEvents, e)
			}
		}

		recaps = append(recaps, YearlyRecap{
			Year:          year,
			TopTrack:      first(TopTracks(yearEvents, 1, ByTotalMsPlayed)),
			TopArtist:     first(TopArtists(yearEvents, 1)),
			TotalMsPlayed: totalMsPlayed(yearEvents),
			TotalTracks:   len(yearEvents),
			UniqueArtists: uniqueArtists(yearEvents),
		})
	}
	return recaps
}

func Lifetime(events []streaming.Event) LifetimeStats {
	var longest *ListeningDay
	for _, day := range GetDailyListening(events) {
		// Strictly greater: the earliest of equally long days wins.
		if longest == nil || day.MsPlayed > longest.MsPlayed {
			longest = &ListeningDay{Date: day.Date, MsPlayed: day.MsPlayed}
		}
	}

	var shuffles, skips int
	for _, e := range events {
		if e.Shuffle {
			shuffles++
		}
		if e.Skipped {
			skips++
		}
	}

	return LifetimeStats{
		MostPlayedTrack:     first(TopTracks(events, 1, ByTotalMsPlayed)),
		LongestListeningDay: longest,
		ShufflePercentage:   percentage(int64(shuffles), int64(len(events))),
		SkipRate:            percentage(int64(skips), int64(len(events))),
		TotalMinutes:        totalMinutes(events),
		TotalTracks:         len(events),
		TotalArtists:        uniqueArtists(events),
	}
}

// Overview does not assume events are sorted.
func Overview(events []streaming.Event) OverviewStats {
	stats := OverviewStats{
		TotalMinutes:  totalMinutes(events),
		TotalTracks:   len(events),
		UniqueArtists: uniqueArtists(events),
	}
	if len(events) == 0 {
		return stats
	}

	sorted := make([]streaming.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	firstDate := sorted[0].Timestamp
	lastDate := sorted[len(sorted)-1].Timestamp
	stats.FirstDate = &firstDate
	stats.LastDate = &lastDate
	return stats
}

var periods = []struct {
	name       string
	start, end int
}{
	{"Morning (6AM-12PM)", 6, 12},
	{"Afternoon (12PM-6PM)", 12, 18},
	{"Evening (6PM-12AM)", 18, 24},
	{"Night (12AM-6AM)", 0, 6},
}

// TimeOfDayBreakdown buckets events by the hour of their timestamp into
// four fixed half-open bands.
func TimeOfDayBreakdown(events []streaming.Event) []TimeOfDayData {
	data := make([]TimeOfDayData, len(periods))
	for i, p := range periods {
		data[i].Period = p.name
	}

	for _, e := range events {
		hour := e.Timestamp.Hour()
		for i, p := range periods {
			if hour >= p.start && hour < p.end {
				data[i].MsPlayed += e.MsPlayed
				data[i].TrackCount++
				break
			}
		}
	}

	total := totalMsPlayed(events)
	for i := range data {
		data[i].Percentage = percentage(data[i].MsPlayed, total)
	}
	return data
}

func HourlyBreakdown(events []streaming.Event) []HourlyData {
	hours := make([]HourlyData, 24)
	for h := range hours {
		hours[h].Hour = h
		hours[h].Label = fmt.Sprintf("%02d:00", h)
	}
	for _, e := range events {
		h := e.Timestamp.Hour()
		hours[h].MsPlayed += e.MsPlayed
		hours[h].TrackCount++
	}
	return hours
}

// DayOfWeekBreakdown is indexed 0 (Sunday) through 6 (Saturday).
func DayOfWeekBreakdown(events []streaming.Event) []DayOfWeekData {
	days := make([]DayOfWeekData, 7)
	for i := range days {
		days[i].DayIndex = i
		days[i].Day = time.Weekday(i).String()
	}
	for _, e := range events {
		d := int(e.Timestamp.Weekday())
		days[d].MsPlayed += e.MsPlayed
		days[d].TrackCount++
	}

	total := totalMsPlayed(events)
	for i := range days {
		days[i].Percentage = percentage(days[i].MsPlayed, total)
	}
	return days
}

// -- Helpers --

func dateKey(e streaming.Event) string {
	return e.Timestamp.UTC().Format("2006-01-02")
}

func totalMsPlayed(events []streaming.Event) int64 {
	var total int64
	for _, e := range events {
		total += e.MsPlayed
	}
	return total
}

func totalMinutes(events []streaming.Event) int64 {
	return int64(math.Round(float64(totalMsPlayed(events)) / 60000))
}

func uniqueArtists(events []streaming.Event) int {
	seen := make(map[string]bool)
	for _, e := range events {
		seen[e.Artist] = true
	}
	return len(seen)
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func truncate[T any](s []T, limit int) []T {
	if limit >= 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

func first[T any](s []T) *T {
	if len(s) == 0 {
		return nil
	}
	v := s[0]
	return &v
}
