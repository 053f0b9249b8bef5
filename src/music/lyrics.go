package music

import (
	"fmt"
	"strings"
	"time"
)

// Origin tells where a lyrics document was served from.
type Origin string

const (
	OriginCache  Origin = "cache"
	OriginRemote Origin = "remote"
)

// LyricsDocument holds cleaned lyrics for a single song.
type LyricsDocument struct {
	Artist    string
	Title     string
	Text      string
	Origin    Origin
	SavedPath string // Empty when the document was not persisted
}

// FromCache reports whether the document was read from the local cache.
func (d *LyricsDocument) FromCache() bool {
	return d.Origin == OriginCache
}

// Song is the best match returned by an exact provider search.
type Song struct {
	Title  string
	Artist string
	Lyrics string
	URL    string
}

// SearchCandidate is a loosely matching song surfaced when the exact search fails.
type SearchCandidate struct {
	DisplayTitle string
}

// Lookup is a single resolution attempt kept in the lookup history.
type Lookup struct {
	ID         string
	Artist     string
	Title      string
	Origin     Origin
	Found      bool
	SavedPath  string
	Candidates []string
	CreatedAt  time.Time
}

// LookupKey is the filesystem safe form of an (artist, title) pair.
type LookupKey struct {
	Artist string
	Title  string
}

// NewLookupKey normalizes artist and title so they can be used as a file name.
// "/" becomes "-" and " " becomes "_".
func NewLookupKey(artist, title string) LookupKey {
	return LookupKey{
		Artist: normalizeKeyPart(artist),
		Title:  normalizeKeyPart(title),
	}
}

// FileName returns the cache file name for the key.
func (k LookupKey) FileName() string {
	return fmt.Sprintf("%s_%s.txt", k.Artist, k.Title)
}

func normalizeKeyPart(s string) string {
	return strings.NewReplacer("/", "-", " ", "_").Replace(s)
}
