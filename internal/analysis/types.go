package analysis

import "time"

// Report is the top-level structure for the listening report.
type Report struct {
	Metadata     ReportMetadata     `yaml:"metadata"`
	Overview     OverviewStats      `yaml:"overview"`
	Lifetime     LifetimeStats      `yaml:"lifetime"`
	Streaks      StreakInfo         `yaml:"streaks"`
	TopTracks    []TrackStats       `yaml:"top_tracks"`
	TopArtists   []ArtistStats      `yaml:"top_artists"`
	TimeOfDay    []TimeOfDayData    `yaml:"time_of_day"`
	DayOfWeek    []DayOfWeekData    `yaml:"day_of_week"`
	Monthly      []MonthlyListening `yaml:"monthly"`
	YearlyRecaps []YearlyRecap      `yaml:"yearly_recaps,omitempty"`
}

type ReportMetadata struct {
	GeneratedDate string `yaml:"generated_date"`
	Range         string `yaml:"range"`
	Search        string `yaml:"search,omitempty"`
	TotalEvents   int    `yaml:"total_events"`
}

type TrackStats struct {
	Track         string `yaml:"track"`
	Artist        string `yaml:"artist"`
	Album         string `yaml:"album"`
	PlayCount     int    `yaml:"play_count"`
	TotalMsPlayed int64  `yaml:"total_ms_played"`
}

type ArtistStats struct {
	Artist        string  `yaml:"artist"`
	PlayCount     int     `yaml:"play_count"`
	TotalMsPlayed int64   `yaml:"total_ms_played"`
	Percentage    float64 `yaml:"percentage"`
}

type DailyListening struct {
	Date       string `yaml:"date"` // YYYY-MM-DD, UTC
	MsPlayed   int64  `yaml:"ms_played"`
	TrackCount int    `yaml:"track_count"`
}

type MonthlyListening struct {
	Month      string `yaml:"month"` // YYYY-MM
	Year       int    `yaml:"year"`
	MsPlayed   int64  `yaml:"ms_played"`
	TrackCount int    `yaml:"track_count"`
}

type YearlyRecap struct {
	Year          int          `yaml:"year"`
	TopTrack      *TrackStats  `yaml:"top_track"`
	TopArtist     *ArtistStats `yaml:"top_artist"`
	TotalMsPlayed int64        `yaml:"total_ms_played"`
	TotalTracks   int          `yaml:"total_tracks"`
	UniqueArtists int          `yaml:"unique_artists"`
}

type ListeningDay struct {
	Date     string `yaml:"date"`
	MsPlayed int64  `yaml:"ms_played"`
}

type LifetimeStats struct {
	MostPlayedTrack     *TrackStats   `yaml:"most_played_track"`
	LongestListeningDay *ListeningDay `yaml:"longest_listening_day"`
	ShufflePercentage   float64       `yaml:"shuffle_percentage"`
	SkipRate            float64       `yaml:"skip_rate"`
	TotalMinutes        int64         `yaml:"total_minutes"`
	TotalTracks         int           `yaml:"total_tracks"`
	TotalArtists        int           `yaml:"total_artists"`
}

type OverviewStats struct {
	TotalMinutes  int64      `yaml:"total_minutes"`
	TotalTracks   int        `yaml:"total_tracks"`
	UniqueArtists int        `yaml:"unique_artists"`
	FirstDate     *time.Time `yaml:"first_date"`
	LastDate      *time.Time `yaml:"last_date"`
}

type StreakInfo struct {
	CurrentStreak      int     `yaml:"current_streak"`
	LongestStreak      int     `yaml:"longest_streak"`
	LongestStreakStart *string `yaml:"longest_streak_start"`
	LongestStreakEnd   *string `yaml:"longest_streak_end"`
	TotalDaysListened  int     `yaml:"total_days_listened"`
	AveragePerWeek     float64 `yaml:"average_per_week"`
}

type TimeOfDayData struct {
	Period     string  `yaml:"period"`
	MsPlayed   int64   `yaml:"ms_played"`
	TrackCount int     `yaml:"track_count"`
	Percentage float64 `yaml:"percentage"`
}

type HourlyData struct {
	Hour       int    `yaml:"hour"`
	Label      string `yaml:"label"`
	MsPlayed   int64  `yaml:"ms_played"`
	TrackCount int    `yaml:"track_count"`
}

type DayOfWeekData struct {
	Day        string  `yaml:"day"`
	DayIndex   int     `yaml:"day_index"`
	MsPlayed   int64   `yaml:"ms_played"`
	TrackCount int     `yaml:"track_count"`
	Percentage float64 `yaml:"percentage"`
}
