package export

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFindFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Streaming_History_Audio_2021-2024_1.json", "[]")
	writeFile(t, dir, "Streaming_History_Audio_2019-2021_0.json", "[]")
	writeFile(t, dir, "extra.json", "[]")
	writeFile(t, dir, "data-config.json", "{}")
	writeFile(t, dir, "example.json", "[]")
	writeFile(t, dir, "notes.txt", "")

	files, err := FindFiles(dir)
	if err != nil {
		t.Fatalf("FindFiles: %v", err)
	}
	want := []string{
		"Streaming_History_Audio_2019-2021_0.json",
		"Streaming_History_Audio_2021-2024_1.json",
		"extra.json",
	}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i, w := range want {
		if filepath.Base(files[i]) != w {
			t.Errorf("file %d: expected %s, got %s", i, w, files[i])
		}
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Streaming_History_Audio_b.json", `[
  {"ts": "2024-01-02T10:00:00Z", "platform": "ios", "ms_played": 2000,
   "master_metadata_track_name": "Second", "master_metadata_album_artist_name": "Band",
   "master_metadata_album_album_name": null, "episode_name": null,
   "shuffle": true, "skipped": false, "offline": false}
]`)
	writeFile(t, dir, "Streaming_History_Audio_a.json", `[
  {"ts": "2024-01-03T10:00:00Z", "platform": "ios", "ms_played": 3000,
   "master_metadata_track_name": "Third"},
  {"ts": "2024-01-01T10:00:00Z", "platform": "web", "ms_played": 1000,
   "master_metadata_track_name": null, "episode_name": "Talk"}
]`)
	writeFile(t, dir, "broken.json", `{not json`)

	events, err := LoadDir(discardLogger(), dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 raw events, got %d", len(events))
	}
	if events[0].EpisodeName == nil || *events[0].EpisodeName != "Talk" {
		t.Errorf("expected the podcast record first, got %+v", events[0])
	}
	if events[1].TrackName == nil || *events[1].TrackName != "Second" || !events[1].Shuffle {
		t.Errorf("unexpected second record: %+v", events[1])
	}
	if events[1].AlbumName != nil {
		t.Errorf("expected null album to decode as nil")
	}
	if events[2].MsPlayed != 3000 {
		t.Errorf("unexpected third record: %+v", events[2])
	}
}

func TestLoadDirEmpty(t *testing.T) {
	if _, err := LoadDir(discardLogger(), t.TempDir()); err == nil {
		t.Errorf("expected an error for a directory without exports")
	}
	if _, err := LoadDir(discardLogger(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Errorf("expected an error for a missing directory")
	}
}
