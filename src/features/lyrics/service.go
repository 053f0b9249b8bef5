package lyrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contre95/lyricsolid/src/features/metrics"
	"github.com/contre95/lyricsolid/src/music"
	"github.com/google/uuid"
)

// Service resolves lyrics from the cache or the remote provider.
// It holds no mutable state, concurrent requests only share the filesystem.
type Service struct {
	cache    CacheStore
	provider LyricsProvider
	history  History
}

// NewService creates a new lyrics service. history may be nil.
func NewService(cache CacheStore, provider LyricsProvider, history History) *Service {
	return &Service{
		cache:    cache,
		provider: provider,
		history:  history,
	}
}

// Resolve returns the lyrics for artist and title.
//
// An existing cache entry is returned as is unless overwrite is set, in which
// case the provider is queried again. Fresh lyrics are written to the cache
// when save is set; a failed write fails the whole call.
func (s *Service) Resolve(ctx context.Context, artist, title string, save, overwrite bool) (*music.LyricsDocument, error) {
	start := time.Now()

	if !overwrite && s.cache.Exists(artist, title) {
		doc, err := s.readCache(artist, title)
		if err == nil {
			slog.Debug("Serving lyrics from cache", "artist", artist, "title", title, "path", doc.SavedPath)
			metrics.ObserveResolution(metrics.OutcomeCache, time.Since(start))
			s.record(ctx, doc, nil)
			return doc, nil
		}
		// The entry vanished or became unreadable, fall through to the provider
		slog.Warn("Cached lyrics unreadable, fetching again", "artist", artist, "title", title, "error", err)
	}

	doc, err := s.provider.Fetch(ctx, artist, title)
	if err != nil {
		metrics.ObserveResolution(metrics.OutcomeNotFound, time.Since(start))
		s.record(ctx, &music.LyricsDocument{Artist: artist, Title: title, Origin: music.OriginRemote}, err)
		return nil, err
	}

	if save {
		path, err := s.cache.Write(artist, title, doc.Text)
		if err != nil {
			metrics.ObserveResolution(metrics.OutcomeError, time.Since(start))
			return nil, fmt.Errorf("%w: %w", music.ErrCacheWrite, err)
		}
		metrics.IncCacheWrites()
		doc.SavedPath = path
		slog.Info("Lyrics saved", "artist", artist, "title", title, "path", path, "overwrite", overwrite)
	}

	metrics.ObserveResolution(metrics.OutcomeRemote, time.Since(start))
	s.record(ctx, doc, nil)
	return doc, nil
}

// Cached returns the cached lyrics for artist and title without touching the provider.
func (s *Service) Cached(ctx context.Context, artist, title string) (*music.LyricsDocument, error) {
	start := time.Now()
	doc, err := s.readCache(artist, title)
	if err != nil {
		return nil, err
	}
	metrics.ObserveResolution(metrics.OutcomeCache, time.Since(start))
	return doc, nil
}

// RecentLookups returns the latest recorded lookups, newest first.
func (s *Service) RecentLookups(ctx context.Context, limit int) ([]music.Lookup, error) {
	if s.history == nil {
		return []music.Lookup{}, nil
	}
	return s.history.RecentLookups(ctx, limit)
}

// ProviderName returns the name of the configured lyrics provider
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

func (s *Service) readCache(artist, title string) (*music.LyricsDocument, error) {
	text, err := s.cache.Read(artist, title)
	if err != nil {
		return nil, err
	}
	return &music.LyricsDocument{
		Artist:    artist,
		Title:     title,
		Text:      text,
		Origin:    music.OriginCache,
		SavedPath: s.cache.PathFor(artist, title),
	}, nil
}

func (s *Service) record(ctx context.Context, doc *music.LyricsDocument, lookupErr error) {
	if s.history == nil {
		return
	}
	lookup := music.Lookup{
		ID:        uuid.New().String(),
		Artist:    doc.Artist,
		Title:     doc.Title,
		Origin:    doc.Origin,
		Found:     lookupErr == nil,
		SavedPath: doc.SavedPath,
		CreatedAt: time.Now(),
	}
	var notFound *music.NotFoundError
	if errors.As(lookupErr, &notFound) {
		lookup.Candidates = notFound.CandidateTitles()
	}
	if err := s.history.RecordLookup(ctx, lookup); err != nil {
		slog.Warn("Failed to record lookup", "artist", doc.Artist, "title", doc.Title, "error", err)
	}
}
