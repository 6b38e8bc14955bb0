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
	"strconv"
	"time"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"github.com/ademuri/streaming-stats/internal/format"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

var streakCmd = newAnalysisCmd("streak", "Shows consecutive listening days",
	`A streak is a run of consecutive UTC days with at least one play. The
current streak counts if it reaches today or yesterday.`, StreakAnalyzer{})

func init() {
	rootCmd.AddCommand(streakCmd)
}

type StreakAnalyzer struct{}

func (s StreakAnalyzer) GetName() string {
	return "Listening streaks"
}

func (s StreakAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	info := analysis.Streaks(events, now)

	longestRange := "-"
	if info.LongestStreakStart != nil && info.LongestStreakEnd != nil {
		longestRange = *info.LongestStreakStart + " to " + *info.LongestStreakEnd
	}

	result.results = [][]string{
		{"Stat", "Value"},
		{"Current streak", pluralDays(info.CurrentStreak)},
		{"Longest streak", pluralDays(info.LongestStreak)},
		{"Longest streak dates", longestRange},
		{"Days listened", format.Number(info.TotalDaysListened)},
		{"Days per week", strconv.FormatFloat(info.AveragePerWeek, 'f', 1, 64)},
	}
	result.summary = fmt.Sprintf("As of %s", format.Date(now))
	return
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return format.Number(n) + " days"
}
