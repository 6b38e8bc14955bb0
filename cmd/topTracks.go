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
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"github.com/ademuri/streaming-stats/internal/format"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

var topTracksNumber int
var topTracksSort string
var topTracksCmd = &cobra.Command{
	Use:   "top-tracks [range]",
	Short: "Gets the most played tracks",
	Long:  `Ranks tracks by total listening time, or by play count with --sort plays.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopTracks(topTracksNumber, topTracksSort, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topTracksCmd)

	topTracksCmd.Flags().IntVarP(&topTracksNumber, "number", "n", 10, "number of results to return")
	topTracksCmd.Flags().StringVar(&topTracksSort, "sort", "time", "sort order: time or plays")
}

func printTopTracks(numToReturn int, sortBy string, args []string) error {
	by, err := parseSortBy(sortBy)
	if err != nil {
		return err
	}
	analyser := TopTracksAnalyzer{Config: AnalyserConfig{NumToReturn: numToReturn}, SortBy: by}
	return printAnalysis(analyser, args)
}

func parseSortBy(s string) (analysis.SortBy, error) {
	switch s {
	case "", "time":
		return analysis.ByTotalMsPlayed, nil
	case "plays":
		return analysis.ByPlayCount, nil
	}
	return 0, fmt.Errorf("Invalid sort order %q, expected time or plays", s)
}

type TopTracksAnalyzer struct {
	Config AnalyserConfig
	SortBy analysis.SortBy
}

func (t *TopTracksAnalyzer) Configure(params map[string]string) error {
	if v, ok := params["sort"]; ok {
		by, err := parseSortBy(v)
		if err != nil {
			return err
		}
		t.SortBy = by
	}
	return t.Config.Configure(params)
}

func (t TopTracksAnalyzer) GetName() string {
	return "Top tracks"
}

func (t TopTracksAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	tracks := analysis.TopTracks(events, analysis.NoLimit, t.SortBy)

	result.results = [][]string{{"#", "Track", "Artist", "Plays", "Time"}}
	for i, track := range tracks {
		if !t.Config.keep(i+1, track.PlayCount) {
			continue
		}
		result.results = append(result.results, []string{
			strconv.Itoa(i + 1),
			track.Track,
			track.Artist,
			format.Number(track.PlayCount),
			format.Duration(track.TotalMsPlayed),
		})
	}

	result.summary = fmt.Sprintf("Found %s tracks and %s plays",
		format.Number(len(tracks)), format.Number(len(events)))
	return
}
