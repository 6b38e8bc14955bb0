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
	"errors"
	"testing"

	"github.com/spf13/viper"

	"github.com/ademuri/streaming-stats/internal/analysis"
)

func TestParseRangeFromArgs_year(t *testing.T) {
	r, err := parseRangeFromArgs([]string{"2020"})
	if err != nil {
		t.Fatalf("Parsing year string: %v", err)
	}
	if r.Kind != analysis.Year || r.Year != 2020 {
		t.Fatalf("Expected year range 2020, got %+v", r)
	}
}

func TestParseRangeFromArgs_fallsBackToFlag(t *testing.T) {
	viper.Reset()
	viper.Set("range", "6m")

	r, err := parseRangeFromArgs(nil)
	if err != nil {
		t.Fatalf("Parsing configured range: %v", err)
	}
	if r.Kind != analysis.Past6Months {
		t.Fatalf("Expected past 6 months, got %+v", r)
	}

	viper.Set("range", "")
	r, err = parseRangeFromArgs(nil)
	if err != nil {
		t.Fatalf("Parsing empty range: %v", err)
	}
	if r.Kind != analysis.LifetimeKind {
		t.Fatalf("Expected lifetime, got %+v", r)
	}
}

func TestParseRangeFromArgs_invalid(t *testing.T) {
	_, err := parseRangeFromArgs([]string{"not_real"})
	if !errors.Is(err, analysis.ErrConfiguration) {
		t.Fatalf("Expected ErrConfiguration, got %v", err)
	}

	_, err = parseRangeFromArgs([]string{"2020", "2021"})
	if err == nil {
		t.Fatalf("Expected error with two range arguments")
	}
}

func TestSplitRangeArg(t *testing.T) {
	rest, rangeArgs := splitRangeArg([]string{"top-artists", "streak", "2023"})
	if len(rest) != 2 || len(rangeArgs) != 1 || rangeArgs[0] != "2023" {
		t.Fatalf("Expected trailing year to be split off, got %v / %v", rest, rangeArgs)
	}

	rest, rangeArgs = splitRangeArg([]string{"top-artists", "streak"})
	if len(rest) != 2 || rangeArgs != nil {
		t.Fatalf("Expected no range argument, got %v / %v", rest, rangeArgs)
	}

	rest, rangeArgs = splitRangeArg([]string{"lifetime"})
	if len(rest) != 1 || rest[0] != "lifetime" || rangeArgs != nil {
		t.Fatalf("Expected lifetime to stay an analysis, got %v / %v", rest, rangeArgs)
	}

	rest, rangeArgs = splitRangeArg([]string{"top-artists", "lifetime"})
	if len(rest) != 2 || rest[1] != "lifetime" || rangeArgs != nil {
		t.Fatalf("Expected lifetime to stay an analysis, got %v / %v", rest, rangeArgs)
	}

	rest, rangeArgs = splitRangeArg([]string{"lifetime", "4w"})
	if len(rest) != 1 || len(rangeArgs) != 1 || rangeArgs[0] != "4w" {
		t.Fatalf("Expected trailing 4w to be split off, got %v / %v", rest, rangeArgs)
	}
}
