package track

import (
	"errors"
	"strings"

	"lideranca/internal/domain/docvalue"
)

// Domain errors
var (
	ErrEmptyTitle  = errors.New("track title cannot be empty")
	ErrEmptyArtist = errors.New("track artist cannot be empty")
)

// Track holds state for a worship repertoire entry.
type Track struct {
	ID         string
	Title      string
	Artist     string
	SpotifyURL string // optional
	YouTubeURL string // optional
}

// Validate checks if the Track has valid data.
// PRE: Track struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (t *Track) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(t.Artist) == "" {
		return ErrEmptyArtist
	}
	return nil
}

// FromFields decodes a schemaless document into a Track.
func FromFields(id string, fields map[string]any) Track {
	return Track{
		ID:         id,
		Title:      docvalue.Str(fields, "title"),
		Artist:     docvalue.Str(fields, "artist"),
		SpotifyURL: docvalue.Str(fields, "spotifyUrl"),
		YouTubeURL: docvalue.Str(fields, "youtubeUrl"),
	}
}

// Fields encodes the Track as document fields for the remote store.
func (t Track) Fields() map[string]any {
	return map[string]any{
		"title":      t.Title,
		"artist":     t.Artist,
		"spotifyUrl": t.SpotifyURL,
		"youtubeUrl": t.YouTubeURL,
	}
}
