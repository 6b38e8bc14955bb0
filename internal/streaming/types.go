package streaming

import "time"

const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
)

// RawEvent is one record of a Spotify extended streaming history export.
// Nullable fields are pointers so that absence is explicit.
type RawEvent struct {
	Timestamp   string  `json:"ts"`
	Platform    string  `json:"platform"`
	MsPlayed    int64   `json:"ms_played"`
	ConnCountry string  `json:"conn_country"`
	TrackName   *string `json:"master_metadata_track_name"`
	ArtistName  *string `json:"master_metadata_album_artist_name"`
	AlbumName   *string `json:"master_metadata_album_album_name"`
	TrackURI    *string `json:"spotify_track_uri"`

	EpisodeName     *string `json:"episode_name"`
	EpisodeShowName *string `json:"episode_show_name"`
	EpisodeURI      *string `json:"spotify_episode_uri"`
	AudiobookTitle  *string `json:"audiobook_title"`

	Shuffle     bool   `json:"shuffle"`
	Skipped     bool   `json:"skipped"`
	Offline     bool   `json:"offline"`
	ReasonStart string `json:"reason_start"`
	ReasonEnd   string `json:"reason_end"`
}

// Event is a normalized, music-only play.
type Event struct {
	Timestamp time.Time
	Year      int
	Month     int // 1-12
	Track     string
	Artist    string
	Album     string
	MsPlayed  int64
	Skipped   bool
	Shuffle   bool
	Platform  string
}

// StringPtr is a helper for building RawEvents by hand.
func StringPtr(s string) *string {
	return &s
}
