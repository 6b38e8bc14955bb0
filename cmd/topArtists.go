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

var topArtistsNumber int
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists [range]",
	Short: "Gets the most listened artists",
	Long:  `Ranks artists by total listening time, with their share of the range's listening time.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := printTopArtists(topArtistsNumber, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().IntVarP(&topArtistsNumber, "number", "n", 10, "number of results to return")
}

func printTopArtists(numToReturn int, args []string) error {
	return printAnalysis(TopArtistsAnalyzer{Config: AnalyserConfig{NumToReturn: numToReturn}}, args)
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopArtistsAnalyzer) SetConfig(config AnalyserConfig) TopArtistsAnalyzer {
	t.Config = config
	return t
}

func (t *TopArtistsAnalyzer) Configure(params map[string]string) error {
	return t.Config.Configure(params)
}

func (t TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t TopArtistsAnalyzer) GetResults(events []streaming.Event, now time.Time) (result Analysis, err error) {
	artists := analysis.TopArtists(events, analysis.NoLimit)

	result.results = [][]string{{"#", "Artist", "Plays", "Time", "Share"}}
	for i, artist := range artists {
		if !t.Config.keep(i+1, artist.PlayCount) {
			continue
		}
		result.results = append(result.results, []string{
			strconv.Itoa(i + 1),
			artist.Artist,
			format.Number(artist.PlayCount),
			format.Duration(artist.TotalMsPlayed),
			format.Percent(artist.Percentage),
		})
	}

	result.summary = fmt.Sprintf("Found %s artists and %s plays",
		format.Number(len(artists)), format.Number(len(events)))
	return
}
