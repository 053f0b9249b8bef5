package lyrics

import (
	"context"

	"github.com/contre95/lyricsolid/src/music"
)

// SearchClient defines the interface for querying a remote lyrics service
type SearchClient interface {
	// SearchExact looks up a single song by title and artist. A nil song means no match.
	SearchExact(ctx context.Context, title, artist string) (*music.Song, error)

	// SearchCandidates searches by title only and returns at most limit results
	SearchCandidates(ctx context.Context, title string, limit int) ([]music.SearchCandidate, error)

	// Name returns the provider name
	Name() string
}

// LyricsProvider fetches cleaned lyrics from a remote service.
// It returns a *music.NotFoundError when nothing matched.
type LyricsProvider interface {
	Fetch(ctx context.Context, artist, title string) (*music.LyricsDocument, error)
	Name() string
}

// CacheStore maps (artist, title) to a lyrics file on disk
type CacheStore interface {
	PathFor(artist, title string) string
	Exists(artist, title string) bool
	// Read returns music.ErrNotCached when there is no entry
	Read(artist, title string) (string, error)
	// Write replaces any existing entry and returns the path written
	Write(artist, title, text string) (string, error)
}

// History records lookups. It is optional and failures never break a resolution.
type History interface {
	RecordLookup(ctx context.Context, lookup music.Lookup) error
	RecentLookups(ctx context.Context, limit int) ([]music.Lookup, error)
}
