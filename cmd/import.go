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
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-stats/internal/export"
	"github.com/ademuri/streaming-stats/internal/store"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

// Source names recorded with each stored event.
const (
	spotifySource = "spotify"
	lastFmSource  = "last.fm"
)

type ImportConfig struct {
	DbPath   string
	DataDir  string
	Timezone string
}

type ImportResult struct {
	Records     int
	ParseErrors int
	Excluded    int
	Added       int64
}

var importCmd = &cobra.Command{
	Use:   "import [data_dir]",
	Short: "Imports a Spotify extended streaming history export",
	Long: `Reads Streaming_History_Audio_*.json (and any other export .json files)
from the data directory and stores the music plays in the local SQLite
database. Podcasts and audiobooks are skipped. Re-importing is idempotent.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config := ImportConfig{
			DbPath:   viper.GetString("database"),
			DataDir:  viper.GetString("data_dir"),
			Timezone: viper.GetString("timezone"),
		}
		if len(args) == 1 {
			config.DataDir = args[0]
		}

		result, err := importExport(config, slog.Default(), time.Now())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("Imported %d new plays from %d records (%d excluded, %d unreadable)\n",
			result.Added, result.Records, result.Excluded, result.ParseErrors)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func importExport(config ImportConfig, logger *slog.Logger, now time.Time) (result ImportResult, err error) {
	loc, err := loadLocation(config.Timezone)
	if err != nil {
		return
	}

	raws, err := export.LoadDir(logger, config.DataDir)
	if err != nil {
		return result, fmt.Errorf("loading export: %w", err)
	}
	result.Records = len(raws)

	events, parseErr := streaming.Normalizer{Location: loc}.NormalizeAll(raws)
	result.ParseErrors = logParseErrors(logger, parseErr)
	result.Excluded = result.Records - len(events) - result.ParseErrors

	db, err := store.New(config.DbPath)
	if err != nil {
		return result, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	result.Added, err = db.AddEvents(spotifySource, events)
	if err != nil {
		return result, fmt.Errorf("storing events: %w", err)
	}

	if err := db.SetLastUpdated(spotifySource, now); err != nil {
		return result, err
	}
	return result, nil
}

// logParseErrors logs each error joined into err and returns how many there
// were.
func logParseErrors(logger *slog.Logger, err error) int {
	if err == nil {
		return 0
	}

	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, e := range errs {
		var perr *streaming.ParseError
		if errors.As(e, &perr) {
			logger.Warn("skipping record with bad timestamp", "index", perr.Index, "ts", perr.Timestamp)
		} else {
			logger.Warn("skipping record", "err", e)
		}
	}
	return len(errs)
}
