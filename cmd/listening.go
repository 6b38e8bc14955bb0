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
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"github.com/ademuri/streaming-stats/internal/format"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

// newAnalysisCmd wires an Analyser to a "<use> [range]" command.
func newAnalysisCmd(use string, short string, long string, a Analyser) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [range]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			err := printAnalysis(a, args)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}
}

var dailyCmd = newAnalysisCmd("daily", "Shows listening time per day",
	`Days are UTC calendar days, oldest first.`, DailyAnalyzer{})

var monthlyCmd = newAnalysisCmd("monthly", "Shows listening time per month",
	`Months follow --timezone, oldest first.`, MonthlyAnalyzer{})

func init() {
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(monthlyCmd)
}

type DailyAnalyzer struct{}

func (d DailyAnalyzer) GetName() string {
	return "Daily listening"
}

func (d DailyAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	days := analysis.GetDailyListening(events)

	result.results = [][]string{{"Date", "Time", "Tracks"}}
	for _, day := range days {
		result.results = append(result.results, []string{
			day.Date,
			format.Duration(day.MsPlayed),
			format.Number(day.TrackCount),
		})
	}

	result.summary = fmt.Sprintf("Listened on %s days", format.Number(len(days)))
	return
}

type MonthlyAnalyzer struct{}

func (m MonthlyAnalyzer) GetName() string {
	return "Monthly listening"
}

func (m MonthlyAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	months := analysis.GetMonthlyListening(events)

	result.results = [][]string{{"Month", "Time", "Tracks"}}
	var total int64
	for _, month := range months {
		total += month.MsPlayed
		result.results = append(result.results, []string{
			month.Month,
			format.Duration(month.MsPlayed),
			format.Number(month.TrackCount),
		})
	}

	result.summary = fmt.Sprintf("%s over %s months", format.Duration(total), format.Number(len(months)))
	return
}
