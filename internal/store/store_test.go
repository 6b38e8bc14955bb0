package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ademuri/streaming-stats/internal/streaming"
)

func createTestDb(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "streaming.db")

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("New(%s) error: %v", dbPath, err)
	}

	return store, dbPath
}

func testEvents() []streaming.Event {
	return []streaming.Event{
		{
			Timestamp: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
			Track:     "Second",
			Artist:    "Band",
			Album:     "Record",
			MsPlayed:  2000,
			Shuffle:   true,
			Platform:  "ios",
		},
		{
			Timestamp: time.Date(2023, 12, 31, 23, 30, 0, 0, time.UTC),
			Track:     "First",
			Artist:    streaming.UnknownArtist,
			Album:     streaming.UnknownAlbum,
			MsPlayed:  1000,
			Skipped:   true,
			Platform:  "web",
		},
	}
}

func TestAddEvents(t *testing.T) {
	s, _ := createTestDb(t)
	defer s.Close()

	added, err := s.AddEvents("export", testEvents())
	if err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}
	if added != 2 {
		t.Errorf("Expected 2 new events, got %d", added)
	}

	// Test idempotent insert (same data)
	added, err = s.AddEvents("export", testEvents())
	if err != nil {
		t.Fatalf("AddEvents (repeat) failed: %v", err)
	}
	if added != 0 {
		t.Errorf("Expected 0 new events after repeat, got %d", added)
	}

	count, err := s.CountEvents()
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 events, got %d", count)
	}
}

func TestEvents(t *testing.T) {
	s, _ := createTestDb(t)
	defer s.Close()

	if _, err := s.AddEvents("export", testEvents()); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	tokyo := time.FixedZone("JST", 9*60*60)
	events, err := s.Events(streaming.Normalizer{Location: tokyo})
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}

	first := events[0]
	if first.Track != "First" || !first.Skipped || first.Shuffle || first.Platform != "web" {
		t.Errorf("Unexpected first event: %+v", first)
	}
	// 23:30 UTC on Dec 31 is already January in Tokyo.
	if first.Year != 2024 || first.Month != 1 {
		t.Errorf("Expected calendar fields in JST, got %d-%d", first.Year, first.Month)
	}
	if !first.Timestamp.Equal(time.Date(2023, 12, 31, 23, 30, 0, 0, time.UTC)) {
		t.Errorf("Unexpected timestamp %s", first.Timestamp)
	}
	if events[1].Track != "Second" || events[1].MsPlayed != 2000 || !events[1].Shuffle {
		t.Errorf("Unexpected second event: %+v", events[1])
	}
}

func TestOpenRequiresData(t *testing.T) {
	s, dbPath := createTestDb(t)
	s.Close()

	if _, err := Open(dbPath); !errors.Is(err, ErrNoData) {
		t.Fatalf("Expected ErrNoData, got %v", err)
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.AddEvents("export", testEvents()); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}
	s.Close()

	s, err = Open(dbPath)
	if err != nil {
		t.Fatalf("Open after import: %v", err)
	}
	s.Close()
}

func TestLatestEventAndLastUpdated(t *testing.T) {
	s, _ := createTestDb(t)
	defer s.Close()

	latest, err := s.GetLatestEvent("last.fm")
	if err != nil {
		t.Fatalf("GetLatestEvent: %v", err)
	}
	if !latest.IsZero() {
		t.Errorf("Expected zero time for empty source, got %s", latest)
	}

	if _, err := s.AddEvents("last.fm", testEvents()); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}
	latest, err = s.GetLatestEvent("last.fm")
	if err != nil {
		t.Fatalf("GetLatestEvent: %v", err)
	}
	if !latest.Equal(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("Unexpected latest event %s", latest)
	}

	updated, err := s.GetLastUpdated("last.fm")
	if err != nil {
		t.Fatalf("GetLastUpdated: %v", err)
	}
	if !updated.IsZero() {
		t.Errorf("Expected zero last updated, got %s", updated)
	}

	now := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	if err := s.SetLastUpdated("last.fm", now); err != nil {
		t.Fatalf("SetLastUpdated: %v", err)
	}
	if err := s.SetLastUpdated("last.fm", now.Add(time.Hour)); err != nil {
		t.Fatalf("SetLastUpdated (repeat): %v", err)
	}
	updated, err = s.GetLastUpdated("last.fm")
	if err != nil {
		t.Fatalf("GetLastUpdated: %v", err)
	}
	if !updated.Equal(now.Add(time.Hour)) {
		t.Errorf("Expected %s, got %s", now.Add(time.Hour), updated)
	}
}

func TestAddUncoveredEvents(t *testing.T) {
	s, _ := createTestDb(t)
	defer s.Close()

	if _, err := s.AddEvents("spotify", testEvents()); err != nil {
		t.Fatalf("AddEvents failed: %v", err)
	}

	scrobbles := []streaming.Event{
		{
			// Same play as the exported "Second", scrobbled at its start.
			Timestamp: time.Date(2024, 1, 2, 9, 57, 0, 0, time.UTC),
			Track:     "second",
			Artist:    "Band",
			Album:     "Record",
			MsPlayed:  150000,
			Platform:  "last.fm",
		},
		{
			Timestamp: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC),
			Track:     "Second",
			Artist:    "Band",
			Album:     "Record",
			MsPlayed:  150000,
			Platform:  "last.fm",
		},
	}
	added, err := s.AddUncoveredEvents("last.fm", 10*time.Minute, scrobbles)
	if err != nil {
		t.Fatalf("AddUncoveredEvents failed: %v", err)
	}
	if added != 1 {
		t.Errorf("Expected 1 new scrobble, got %d", added)
	}

	// Scrobbles don't cover each other.
	added, err = s.AddUncoveredEvents("last.fm", 10*time.Minute, []streaming.Event{{
		Timestamp: time.Date(2024, 1, 2, 12, 1, 0, 0, time.UTC),
		Track:     "Second",
		Artist:    "Band",
		MsPlayed:  150000,
	}})
	if err != nil {
		t.Fatalf("AddUncoveredEvents failed: %v", err)
	}
	if added != 1 {
		t.Errorf("Expected repeat scrobble to be added, got %d", added)
	}

	count, err := s.CountEvents()
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 4 {
		t.Errorf("Expected 4 stored events, got %d", count)
	}
}
