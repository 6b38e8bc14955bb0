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
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

type Analysis struct {
	results [][]string
	summary string
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int

	// Only return results with more plays than this. Default is all results.
	FilterThreshold int
}

type Analyser interface {
	// GetResults analyses events that have already been range and search
	// filtered. now anchors anything relative to the current day.
	GetResults(events []streaming.Event, now time.Time) (Analysis, error)

	GetName() string
}

type Configurable interface {
	Configure(params map[string]string) error
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	table := tablewriter.NewWriter(out)
	table.Header(a.results[0])
	for _, row := range a.results[1:] {
		if err := table.Append(row); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Sprintf("Error rendering table: %v", err)
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

// keep reports whether the rank-th result (1-based) with the given play count
// passes the config's limit and threshold.
func (c AnalyserConfig) keep(rank int, plays int) bool {
	return (c.NumToReturn == 0 || rank <= c.NumToReturn) &&
		(c.FilterThreshold == 0 || plays > c.FilterThreshold)
}

func (c *AnalyserConfig) Configure(params map[string]string) error {
	if v, ok := params["n"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing n: %w", err)
		}
		c.NumToReturn = n
	}
	if v, ok := params["min"]; ok {
		threshold, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing min: %w", err)
		}
		c.FilterThreshold = threshold
	}
	return nil
}

func printAnalysis(a Analyser, args []string) error {
	config, err := queryConfigFromFlags(args)
	if err != nil {
		return err
	}

	now := time.Now()
	events, err := loadEvents(config, now)
	if err != nil {
		return err
	}

	out, err := a.GetResults(events, now)
	if err != nil {
		return fmt.Errorf("%s: %w", a.GetName(), err)
	}
	fmt.Printf("%s (%s)\n", a.GetName(), config.Range)
	fmt.Println(out)
	return nil
}
