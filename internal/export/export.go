// Package export reads Spotify extended streaming history files.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

var historyPattern = regexp.MustCompile(`(?i)^Streaming_History_Audio.*\.json$`)

// FindFiles lists the export files in dir. Files named like the Spotify
// audio history come first; other .json files follow unless they look like
// config or example files.
func FindFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var history, other []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		if strings.Contains(name, "config") || strings.Contains(name, "example") {
			continue
		}
		if historyPattern.MatchString(name) {
			history = append(history, filepath.Join(dir, name))
		} else {
			other = append(other, filepath.Join(dir, name))
		}
	}
	sort.Strings(history)
	sort.Strings(other)
	return append(history, other...), nil
}

func ReadFile(path string) ([]streaming.RawEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var events []streaming.RawEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return events, nil
}

// Load reads every file and merges them in timestamp order. A file that
// can't be read is logged and skipped.
func Load(logger *slog.Logger, paths []string) []streaming.RawEvent {
	var all []streaming.RawEvent
	for _, path := range paths {
		events, err := ReadFile(path)
		if err != nil {
			logger.Warn("skipping export file", "path", path, "err", err)
			continue
		}
		logger.Debug("read export file", "path", path, "records", len(events))
		all = append(all, events...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return sortKey(all[i].Timestamp).Before(sortKey(all[j].Timestamp))
	})
	return all
}

// LoadDir is FindFiles followed by Load.
func LoadDir(logger *slog.Logger, dir string) ([]streaming.RawEvent, error) {
	paths, err := FindFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSON export files found in %s", dir)
	}
	return Load(logger, paths), nil
}

// sortKey places unparseable timestamps first; the normalizer reports them.
func sortKey(ts string) time.Time {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return time.Time{}
	}
	return t
}
