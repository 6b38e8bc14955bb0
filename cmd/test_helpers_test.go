package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ademuri/streaming-stats/internal/store"
	"github.com/ademuri/streaming-stats/internal/streaming"
)

func testEvent(ts time.Time, track string, artist string, ms int64) streaming.Event {
	return streaming.Normalizer{Location: time.UTC}.Localize(streaming.Event{
		Timestamp: ts,
		Track:     track,
		Artist:    artist,
		Album:     streaming.UnknownAlbum,
		MsPlayed:  ms,
		Platform:  "test",
	})
}

func createTestDb(t *testing.T, events []streaming.Event) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "streaming.db")

	db, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New(%s) error: %v", dbPath, err)
	}
	defer db.Close()

	if len(events) > 0 {
		if _, err := db.AddEvents(spotifySource, events); err != nil {
			t.Fatalf("AddEvents: %v", err)
		}
	}
	return dbPath
}
