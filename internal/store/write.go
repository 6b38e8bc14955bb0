package store

import (
	"fmt"
	"time"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

// AddEvents inserts a batch of events transactionally and returns how many
// were new. Re-importing the same events is a no-op.
func (s *Store) AddEvents(source string, events []streaming.Event) (int64, error) {
	return s.insertEvents(`
		INSERT OR IGNORE INTO Event
		(ts, track, artist, album, ms_played, skipped, shuffle, platform, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		func(e streaming.Event) []interface{} {
			return eventArgs(source, e)
		}, events)
}

// AddUncoveredEvents is AddEvents, except that an event is skipped when a
// different source already holds the same track and artist within window of
// its timestamp. This keeps a play that is both exported and scrobbled from
// counting twice.
func (s *Store) AddUncoveredEvents(source string, window time.Duration, events []streaming.Event) (int64, error) {
	return s.insertEvents(`
		INSERT OR IGNORE INTO Event
		(ts, track, artist, album, ms_played, skipped, shuffle, platform, source)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM Event
			WHERE source != ?
			AND track = ? COLLATE NOCASE
			AND artist = ? COLLATE NOCASE
			AND ts BETWEEN ? AND ?
		)`,
		func(e streaming.Event) []interface{} {
			ts := e.Timestamp.UnixMilli()
			return append(eventArgs(source, e),
				source, e.Track, e.Artist, ts-window.Milliseconds(), ts+window.Milliseconds())
		}, events)
}

func eventArgs(source string, e streaming.Event) []interface{} {
	return []interface{}{e.Timestamp.UnixMilli(), e.Track, e.Artist, e.Album,
		e.MsPlayed, e.Skipped, e.Shuffle, e.Platform, source}
}

func (s *Store) insertEvents(query string, args func(streaming.Event) []interface{}, events []streaming.Event) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var added int64
	for _, e := range events {
		res, err := stmt.Exec(args(e)...)
		if err != nil {
			return 0, fmt.Errorf("inserting event %q at %s: %w", e.Track, e.Timestamp, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("counting inserted rows: %w", err)
		}
		added += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return added, nil
}

func (s *Store) SetLastUpdated(source string, updated time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO Source (name, last_updated) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET last_updated = excluded.last_updated`,
		source, updated)
	if err != nil {
		return fmt.Errorf("updating last_updated for %q: %w", source, err)
	}
	return nil
}
