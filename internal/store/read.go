package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

func (s *Store) CountEvents() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM Event").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}

// Events returns every stored event in chronological order, with calendar
// fields computed by n.
func (s *Store) Events(n streaming.Normalizer) ([]streaming.Event, error) {
	rows, err := s.db.Query(`
		SELECT ts, track, artist, album, ms_played, skipped, shuffle, platform
		FROM Event
		ORDER BY ts ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []streaming.Event
	for rows.Next() {
		var e streaming.Event
		var ts int64
		if err := rows.Scan(&ts, &e.Track, &e.Artist, &e.Album, &e.MsPlayed, &e.Skipped, &e.Shuffle, &e.Platform); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		events = append(events, n.Localize(e))
	}
	return events, rows.Err()
}

// GetLatestEvent returns the newest event timestamp from source, or the zero
// time if there is none.
func (s *Store) GetLatestEvent(source string) (time.Time, error) {
	var ts sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(ts) FROM Event WHERE source = ?", source).Scan(&ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("getting latest event: %w", err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return time.UnixMilli(ts.Int64), nil
}

func (s *Store) GetLastUpdated(source string) (time.Time, error) {
	row := s.db.QueryRow("SELECT last_updated FROM Source WHERE name = ?", source)
	var t sql.NullTime
	err := row.Scan(&t)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("getting last updated: %w", err)
	}
	return t.Time, nil
}
