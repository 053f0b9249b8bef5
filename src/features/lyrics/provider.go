package lyrics

import (
	"context"
	"log/slog"
	"strings"

	"github.com/contre95/lyricsolid/src/features/metrics"
	"github.com/contre95/lyricsolid/src/music"
)

// MaxCandidates is the number of fallback results surfaced when the exact search fails.
const MaxCandidates = 5

// Provider fetches lyrics through a SearchClient. Transport errors never escape
// Fetch, they are logged and turned into a *music.NotFoundError.
type Provider struct {
	client SearchClient
}

// NewProvider creates a new lyrics provider
func NewProvider(client SearchClient) *Provider {
	return &Provider{client: client}
}

// Name returns the name of the underlying search client
func (p *Provider) Name() string { return p.client.Name() }

// Fetch runs the exact search and, when it yields nothing, the title-only fallback search.
func (p *Provider) Fetch(ctx context.Context, artist, title string) (*music.LyricsDocument, error) {
	song, err := p.client.SearchExact(ctx, title, artist)
	switch {
	case err != nil:
		metrics.IncProviderCall("exact", "error")
		slog.Warn("Exact lyrics search failed", "provider", p.client.Name(), "artist", artist, "title", title, "error", err)
	case song != nil && strings.TrimSpace(song.Lyrics) != "":
		metrics.IncProviderCall("exact", "found")
		slog.Debug("Exact lyrics match", "provider", p.client.Name(), "artist", artist, "title", title, "url", song.URL)
		return &music.LyricsDocument{
			Artist: artist,
			Title:  title,
			Text:   Clean(song.Lyrics),
			Origin: music.OriginRemote,
		}, nil
	default:
		metrics.IncProviderCall("exact", "empty")
	}

	notFound := &music.NotFoundError{Artist: artist, Title: title, Cause: err}

	candidates, err := p.client.SearchCandidates(ctx, title, MaxCandidates)
	if err != nil {
		metrics.IncProviderCall("candidates", "error")
		slog.Warn("Candidate search failed", "provider", p.client.Name(), "title", title, "error", err)
		notFound.Cause = err
		return nil, notFound
	}
	if len(candidates) == 0 {
		metrics.IncProviderCall("candidates", "empty")
		slog.Info("No candidates found", "provider", p.client.Name(), "artist", artist, "title", title)
		return nil, notFound
	}

	metrics.IncProviderCall("candidates", "found")
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}
	notFound.Candidates = candidates
	slog.Info("No direct match, showing close candidates", "provider", p.client.Name(), "artist", artist, "title", title, "candidates", notFound.CandidateTitles())
	return nil, notFound
}
