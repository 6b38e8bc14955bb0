/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"time"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"github.com/ademuri/streaming-stats/internal/format"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

var overviewCmd = newAnalysisCmd("overview", "Summarises the listening history",
	`Total time, track and artist counts, and the first and last listen.`, OverviewAnalyzer{})

var lifetimeCmd = newAnalysisCmd("lifetime", "Shows lifetime highlights",
	`Most played track, longest listening day, shuffle and skip rates.`, LifetimeAnalyzer{})

func init() {
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(lifetimeCmd)
}

type OverviewAnalyzer struct{}

func (o OverviewAnalyzer) GetName() string {
	return "Overview"
}

func (o OverviewAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	stats := analysis.Overview(events)

	result.results = [][]string{
		{"Stat", "Value"},
		{"Listening time", format.Duration(stats.TotalMinutes * 60000)},
		{"Minutes", format.Number(stats.TotalMinutes)},
		{"Tracks played", format.Number(stats.TotalTracks)},
		{"Artists", format.Number(stats.UniqueArtists)},
		{"First listen", optionalDate(stats.FirstDate)},
		{"Last listen", optionalDate(stats.LastDate)},
	}
	result.summary = fmt.Sprintf("Based on %s plays", format.Number(len(events)))
	return
}

type LifetimeAnalyzer struct{}

func (l LifetimeAnalyzer) GetName() string {
	return "Lifetime stats"
}

func (l LifetimeAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	stats := analysis.Lifetime(events)

	mostPlayed := "-"
	if stats.MostPlayedTrack != nil {
		mostPlayed = fmt.Sprintf("%s - %s (%s)", stats.MostPlayedTrack.Track,
			stats.MostPlayedTrack.Artist, format.Duration(stats.MostPlayedTrack.TotalMsPlayed))
	}
	longestDay := "-"
	if stats.LongestListeningDay != nil {
		longestDay = fmt.Sprintf("%s (%s)", stats.LongestListeningDay.Date,
			format.Duration(stats.LongestListeningDay.MsPlayed))
	}

	result.results = [][]string{
		{"Stat", "Value"},
		{"Most played track", mostPlayed},
		{"Longest listening day", longestDay},
		{"Shuffle", format.Percent(stats.ShufflePercentage)},
		{"Skip rate", format.Percent(stats.SkipRate)},
		{"Minutes", format.Number(stats.TotalMinutes)},
		{"Tracks played", format.Number(stats.TotalTracks)},
		{"Artists", format.Number(stats.TotalArtists)},
	}
	result.summary = fmt.Sprintf("Based on %s plays", format.Number(len(events)))
	return
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return format.Date(*t)
}
