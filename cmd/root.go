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
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/ademuri/streaming-stats/internal/analysis"
	"github.com/ademuri/streaming-stats/internal/logging"
	"github.com/ademuri/streaming-stats/internal/store"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

var cfgFile string
var lastFmApiKey string
var lastFmSecret string
var lastFmUser string
var databasePath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streaming-stats",
	Short: "Computes listening statistics from a Spotify streaming history export",
	Long: `Import your Spotify extended streaming history with 'import', then
query it with top-tracks, top-artists, streak, report and friends.

Most commands take an optional [range] argument, which overrides --range:
  lifetime (or all), 4w, 6m, 1y, or a four-digit year such as 2023.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.streaming-stats.yaml)")

	rootCmd.PersistentFlags().StringVarP(
		&databasePath, "database", "d", "./streaming.db", "Path to the SQLite database")
	viper.BindPFlag("database", rootCmd.PersistentFlags().Lookup("database"))

	var dataDir string
	rootCmd.PersistentFlags().StringVar(&dataDir, "data_dir", "./data", "Directory containing the Spotify export JSON files")
	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data_dir"))

	var timezone string
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "", "IANA time zone for hour, weekday and year boundaries (default local)")
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))

	var timeRange string
	rootCmd.PersistentFlags().StringVarP(&timeRange, "range", "r", "lifetime", "Time range: lifetime, 4w, 6m, 1y or a year")
	viper.BindPFlag("range", rootCmd.PersistentFlags().Lookup("range"))

	var search string
	rootCmd.PersistentFlags().StringVarP(&search, "search", "s", "", "Only include tracks whose name, artist or album contains this text")
	viper.BindPFlag("search", rootCmd.PersistentFlags().Lookup("search"))

	var verbose bool
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().StringVarP(
		&lastFmApiKey, "api_key", "", "", "last.fm API key")
	viper.BindPFlag("api_key", rootCmd.PersistentFlags().Lookup("api_key"))

	rootCmd.PersistentFlags().StringVarP(
		&lastFmSecret, "secret", "", "", "last.fm secret")
	viper.BindPFlag("secret", rootCmd.PersistentFlags().Lookup("secret"))

	rootCmd.PersistentFlags().StringVarP(
		&lastFmUser, "user", "u", "", "last.fm username to import scrobbles for")
	viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))

	var sendgridKey string
	rootCmd.PersistentFlags().StringVar(&sendgridKey, "sendgrid_api_key", "", "SendGrid API key")
	viper.BindPFlag("sendgrid_api_key", rootCmd.PersistentFlags().Lookup("sendgrid_api_key"))

	var from string
	rootCmd.PersistentFlags().StringVar(&from, "from", "", "From email address")
	viper.BindPFlag("from", rootCmd.PersistentFlags().Lookup("from"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".streaming-stats" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".streaming-stats")
	}

	// If a config file is found, read it in.
	configErr := viper.ReadInConfig()

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})

	slog.SetDefault(logging.New(os.Stderr, viper.GetBool("verbose")))
	if configErr == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// QueryConfig selects the events a read-only command operates on.
type QueryConfig struct {
	DbPath   string
	Timezone string
	Range    analysis.TimeRange
	Search   string
}

func queryConfigFromFlags(args []string) (QueryConfig, error) {
	r, err := parseRangeFromArgs(args)
	if err != nil {
		return QueryConfig{}, err
	}
	return QueryConfig{
		DbPath:   viper.GetString("database"),
		Timezone: viper.GetString("timezone"),
		Range:    r,
		Search:   viper.GetString("search"),
	}, nil
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("--timezone: %w", err)
	}
	return loc, nil
}

// loadEvents reads every stored event and applies the range filter, then the
// search filter.
func loadEvents(config QueryConfig, now time.Time) ([]streaming.Event, error) {
	loc, err := loadLocation(config.Timezone)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(config.DbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	events, err := db.Events(streaming.Normalizer{Location: loc})
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}

	events, err = analysis.FilterByTimeRange(events, config.Range, now)
	if err != nil {
		return nil, err
	}
	filtered := analysis.Search(events, config.Search)
	slog.Debug("loaded events", "range", config.Range.String(), "search", config.Search, "count", len(filtered))
	return filtered, nil
}
