package streaming

import (
	"errors"
	"fmt"
	"time"
)

// ParseError reports a record whose timestamp could not be parsed.
type ParseError struct {
	Index     int
	Timestamp string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d: parsing timestamp %q: %v", e.Index, e.Timestamp, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var timestampLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
}

// Normalizer turns raw export records into Events. Calendar fields (year,
// month, hour of day, weekday) are taken in Location.
type Normalizer struct {
	Location *time.Location
}

var defaultNormalizer = Normalizer{}

// Normalize uses the local time zone.
func Normalize(raw RawEvent) (Event, bool, error) {
	return defaultNormalizer.Normalize(raw)
}

// NormalizeAll uses the local time zone.
func NormalizeAll(raws []RawEvent) ([]Event, error) {
	return defaultNormalizer.NormalizeAll(raws)
}

func (n Normalizer) location() *time.Location {
	if n.Location == nil {
		return time.Local
	}
	return n.Location
}

// Normalize returns ok=false for podcasts, audiobooks and records without a
// track name. A timestamp that cannot be parsed on an otherwise valid record
// is returned as a *ParseError.
func (n Normalizer) Normalize(raw RawEvent) (event Event, ok bool, err error) {
	if !isMusic(raw) {
		return Event{}, false, nil
	}

	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return Event{}, false, &ParseError{Timestamp: raw.Timestamp, Err: err}
	}

	msPlayed := raw.MsPlayed
	if msPlayed < 0 {
		msPlayed = 0
	}

	event = n.Localize(Event{
		Timestamp: ts,
		Track:     *raw.TrackName,
		Artist:    valueOr(raw.ArtistName, UnknownArtist),
		Album:     valueOr(raw.AlbumName, UnknownAlbum),
		MsPlayed:  msPlayed,
		Skipped:   raw.Skipped,
		Shuffle:   raw.Shuffle,
		Platform:  raw.Platform,
	})
	return event, true, nil
}

// Localize moves e into the normalizer's location and recomputes its
// calendar fields.
func (n Normalizer) Localize(e Event) Event {
	e.Timestamp = e.Timestamp.In(n.location())
	e.Year = e.Timestamp.Year()
	e.Month = int(e.Timestamp.Month())
	return e
}

// NormalizeAll keeps the relative order of its input. Excluded records are
// dropped silently; records with bad timestamps are dropped too, and their
// errors are joined into the returned error so the caller can log them.
// The returned events are valid even when err != nil.
func (n Normalizer) NormalizeAll(raws []RawEvent) ([]Event, error) {
	events := make([]Event, 0, len(raws))
	var errs []error
	for i, raw := range raws {
		event, ok, err := n.Normalize(raw)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Index = i
			}
			errs = append(errs, err)
			continue
		}
		if ok {
			events = append(events, event)
		}
	}
	return events, errors.Join(errs...)
}

func isMusic(raw RawEvent) bool {
	// Podcast and audiobook fields win over a present track name.
	if present(raw.EpisodeName) || present(raw.EpisodeShowName) || present(raw.EpisodeURI) {
		return false
	}
	if present(raw.AudiobookTitle) {
		return false
	}
	return present(raw.TrackName)
}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func present(s *string) bool {
	return s != nil && *s != ""
}

func valueOr(s *string, fallback string) string {
	if !present(s) {
		return fallback
	}
	return *s
}
