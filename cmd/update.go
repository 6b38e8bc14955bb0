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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/ademuri/lastfm-go/lastfm"

	"github.com/ademuri/streaming-stats/internal/store"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

// last.fm scrobbles carry no play duration; count each as an average track.
const estimatedScrobbleMs = 150 * 1000

// A scrobble within this long of an exported play of the same track is the
// same play. Exports stamp the end of a play and last.fm the start.
const scrobbleCoverWindow = 15 * time.Minute

type UpdateConfig struct {
	DbPath   string
	User     string
	ApiKey   string
	Secret   string
	After    string
	Force    bool
	Timezone string
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetches scrobbles from last.fm",
	Long: `Adds a last.fm user's scrobbles to the local SQLite database, alongside any
imported Spotify history. Scrobbles that match an imported play of the same
track within 15 minutes are skipped so they aren't counted twice. Requires
--api_key, --secret and --user.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range []string{"api_key", "secret", "user"} {
			if viper.GetString(name) == "" {
				return fmt.Errorf("required flag(s) %q not set", name)
			}
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		config := UpdateConfig{
			DbPath:   viper.GetString("database"),
			User:     viper.GetString("user"),
			ApiKey:   viper.GetString("api_key"),
			Secret:   viper.GetString("secret"),
			After:    viper.GetString("after"),
			Force:    viper.GetBool("force"),
			Timezone: viper.GetString("timezone"),
		}

		err := updateDatabase(cmd.Context(), config, slog.Default())
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	var afterString string
	updateCmd.Flags().StringVar(&afterString, "after", "", "Only get listening data after this date, in yyyy-mm-dd format")
	viper.BindPFlag("after", updateCmd.Flags().Lookup("after"))

	var force bool
	updateCmd.Flags().BoolVarP(&force, "force", "f", false, "Get all listening data, regardless of what's already present (idempotent)")
	viper.BindPFlag("force", updateCmd.Flags().Lookup("force"))
}

func updateDatabase(ctx context.Context, config UpdateConfig, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var after time.Time
	var err error
	if len(config.After) > 0 {
		after, err = time.Parse("2006-01-02", config.After)
		if err != nil {
			return fmt.Errorf("--after: %w", err)
		}
	}

	loc, err := loadLocation(config.Timezone)
	if err != nil {
		return err
	}
	normalizer := streaming.Normalizer{Location: loc}

	user := strings.ToLower(config.User)
	db, err := store.New(config.DbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	lastfmClient := lastfm.New(config.ApiKey, config.Secret)
	lastfmClient.SetUserAgent("streaming-stats/1.0")

	lastUpdated, err := db.GetLastUpdated(lastFmSource)
	if err != nil {
		return err
	}
	now := time.Now()
	if !lastUpdated.IsZero() && now.Sub(lastUpdated).Hours() < 24 && !config.Force {
		fmt.Printf("last.fm data was already updated in the past 24 hours\n")
		return nil
	}

	latestListen, err := db.GetLatestEvent(lastFmSource)
	if err != nil {
		return fmt.Errorf("getting latest listen: %w", err)
	}
	logger.Info("updating from last.fm", "user", user, "latest_local", latestListen.Format("2006-01-02"))

	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)
	page := 1 // First page is 1
	pages := 0
	var added int64
	for {
		params := lastfm.P{
			"limit": 200,
			"page":  page,
			"user":  user,
		}
		if !after.IsZero() {
			params["from"] = after.Unix()
		}

		var recentTracks lastfm.UserGetRecentTracks
		err := retry.Do(
			func() error {
				var err error
				recentTracks, err = lastfmClient.User.GetRecentTracks(params)
				return err
			},
			retry.Context(ctx),
			retry.Attempts(5),
			retry.RetryIf(func(err error) bool {
				if isServerError(err) {
					logger.Warn("last.fm errored, retrying", "page", page, "err", err)
					return true
				}
				return false
			}),
		)
		if err != nil {
			return fmt.Errorf("fetching recent tracks: %w", err)
		}

		if pages == 0 {
			pages = recentTracks.TotalPages
		}
		if len(recentTracks.Tracks) == 0 {
			break
		}

		var raws []streaming.RawEvent
		var oldest time.Time
		for _, t := range recentTracks.Tracks {
			raw, ok := scrobbleToRaw(t.Name, t.Artist.Name, t.Album.Name, t.Date.Uts)
			if !ok {
				continue
			}
			raws = append(raws, raw)
			if ts, err := strconv.ParseInt(t.Date.Uts, 10, 64); err == nil {
				oldest = time.Unix(ts, 0)
			}
		}

		events, parseErr := normalizer.NormalizeAll(raws)
		logParseErrors(logger, parseErr)

		n, err := db.AddUncoveredEvents(lastFmSource, scrobbleCoverWindow, events)
		if err != nil {
			return fmt.Errorf("inserting scrobbles (page %d): %w", page, err)
		}
		added += n

		logger.Info("downloaded page", "page", page, "pages", pages, "oldest", oldest.Format("2006-01-02"))
		page += 1

		if page > pages {
			break
		}
		if !config.Force && !latestListen.IsZero() && oldest.Before(latestListen.AddDate(0, 0, -7)) {
			logger.Info("refreshed back to existing data")
			break
		}

		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if err := db.SetLastUpdated(lastFmSource, now); err != nil {
		return err
	}
	fmt.Printf("Added %d scrobbles for %q\n", added, user)
	return nil
}

func isServerError(err error) bool {
	var lerr *lastfm.LastfmError
	if errors.As(err, &lerr) {
		return lerr.Code/100 == 5
	}
	return false
}

// scrobbleToRaw turns a last.fm scrobble into an export-shaped record. The
// currently playing track has no timestamp and is skipped.
func scrobbleToRaw(track, artist, album, uts string) (streaming.RawEvent, bool) {
	if uts == "" || track == "" {
		return streaming.RawEvent{}, false
	}
	secs, err := strconv.ParseInt(uts, 10, 64)
	if err != nil {
		return streaming.RawEvent{}, false
	}

	raw := streaming.RawEvent{
		Timestamp: time.Unix(secs, 0).UTC().Format(time.RFC3339),
		Platform:  lastFmSource,
		MsPlayed:  estimatedScrobbleMs,
		TrackName: streaming.StringPtr(track),
	}
	if artist != "" {
		raw.ArtistName = streaming.StringPtr(artist)
	}
	if album != "" {
		raw.AlbumName = streaming.StringPtr(album)
	}
	return raw, true
}
