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
	"time"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"github.com/ademuri/streaming-stats/internal/format"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

const breakdownLong = `Hours and weekdays follow --timezone.`

var timeOfDayCmd = newAnalysisCmd("time-of-day", "Splits listening into morning, afternoon, evening and night",
	breakdownLong, TimeOfDayAnalyzer{})

var hourlyCmd = newAnalysisCmd("hourly", "Splits listening by hour of day",
	breakdownLong, HourlyAnalyzer{})

var dayOfWeekCmd = newAnalysisCmd("day-of-week", "Splits listening by weekday",
	breakdownLong, DayOfWeekAnalyzer{})

func init() {
	rootCmd.AddCommand(timeOfDayCmd)
	rootCmd.AddCommand(hourlyCmd)
	rootCmd.AddCommand(dayOfWeekCmd)
}

type TimeOfDayAnalyzer struct{}

func (t TimeOfDayAnalyzer) GetName() string {
	return "Time of day"
}

func (t TimeOfDayAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	result.results = [][]string{{"Period", "Time", "Tracks", "Share"}}
	peak := ""
	var peakMs int64
	for _, p := range analysis.TimeOfDayBreakdown(events) {
		if p.MsPlayed > peakMs {
			peak, peakMs = p.Period, p.MsPlayed
		}
		result.results = append(result.results, []string{
			p.Period,
			format.Duration(p.MsPlayed),
			format.Number(p.TrackCount),
			format.Percent(p.Percentage),
		})
	}
	result.summary = peakSummary("Most listening", peak)
	return
}

type HourlyAnalyzer struct{}

func (h HourlyAnalyzer) GetName() string {
	return "Hourly"
}

func (h HourlyAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	hours := analysis.HourlyBreakdown(events)

	result.results = [][]string{{"Hour", "Time", "Tracks"}}
	peak := ""
	var peakMs int64
	for _, hour := range hours {
		if hour.MsPlayed > peakMs {
			peak, peakMs = hour.Label, hour.MsPlayed
		}
		result.results = append(result.results, []string{
			hour.Label,
			format.Duration(hour.MsPlayed),
			format.Number(hour.TrackCount),
		})
	}
	result.summary = peakSummary("Peak hour", peak)
	return
}

type DayOfWeekAnalyzer struct{}

func (d DayOfWeekAnalyzer) GetName() string {
	return "Day of week"
}

func (d DayOfWeekAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	result.results = [][]string{{"Day", "Time", "Tracks", "Share"}}
	peak := ""
	var peakMs int64
	for _, day := range analysis.DayOfWeekBreakdown(events) {
		if day.MsPlayed > peakMs {
			peak, peakMs = day.Day, day.MsPlayed
		}
		result.results = append(result.results, []string{
			day.Day,
			format.Duration(day.MsPlayed),
			format.Number(day.TrackCount),
			format.Percent(day.Percentage),
		})
	}
	result.summary = peakSummary("Most listening", peak)
	return
}

func peakSummary(prefix string, peak string) string {
	if peak == "" {
		return "No listening data"
	}
	return prefix + ": " + peak
}
