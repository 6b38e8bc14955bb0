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

var yearlyCmd = newAnalysisCmd("yearly", "Recaps each year",
	`Shows total time, top track and top artist per year, newest first.`, YearlyAnalyzer{})

var yearsCmd = newAnalysisCmd("years", "Lists the years with listening data",
	`Any of these can be passed as a [range] argument.`, YearsAnalyzer{})

func init() {
	rootCmd.AddCommand(yearlyCmd)
	rootCmd.AddCommand(yearsCmd)
}

type YearlyAnalyzer struct{}

func (y YearlyAnalyzer) GetName() string {
	return "Yearly recap"
}

func (y YearlyAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	recaps := analysis.YearlyRecaps(events)

	result.results = [][]string{{"Year", "Time", "Tracks", "Artists", "Top track", "Top artist"}}
	for _, recap := range recaps {
		topTrack := "-"
		if recap.TopTrack != nil {
			topTrack = recap.TopTrack.Track + " - " + recap.TopTrack.Artist
		}
		topArtist := "-"
		if recap.TopArtist != nil {
			topArtist = recap.TopArtist.Artist
		}
		result.results = append(result.results, []string{
			strconv.Itoa(recap.Year),
			format.Duration(recap.TotalMsPlayed),
			format.Number(recap.TotalTracks),
			format.Number(recap.UniqueArtists),
			topTrack,
			topArtist,
		})
	}

	result.summary = fmt.Sprintf("Found %d years", len(recaps))
	return
}

type YearsAnalyzer struct{}

func (y YearsAnalyzer) GetName() string {
	return "Available years"
}

func (y YearsAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	years := analysis.AvailableYears(events)

	result.results = [][]string{{"Year"}}
	for _, year := range years {
		result.results = append(result.results, []string{strconv.Itoa(year)})
	}

	result.summary = fmt.Sprintf("Found %d years", len(years))
	return
}
