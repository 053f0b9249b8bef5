package music

import (
	"errors"
	"fmt"
)

var (
	// ErrLyricsNotFound is returned when neither the cache nor the provider had lyrics.
	ErrLyricsNotFound = errors.New("lyrics not found")
	// ErrNotCached is returned when a cache entry was requested but does not exist.
	ErrNotCached = errors.New("lyrics not cached")
	// ErrCacheWrite is returned when saving lyrics to the cache failed.
	ErrCacheWrite = errors.New("failed to write lyrics cache")
)

// NotFoundError describes a failed lookup. Candidates holds the songs surfaced by
// the fallback search, in provider order, and is empty when none were found.
type NotFoundError struct {
	Artist     string
	Title      string
	Candidates []SearchCandidate
	Cause      error
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("lyrics not found for %q by %q", e.Title, e.Artist)
	if len(e.Candidates) > 0 {
		msg = fmt.Sprintf("%s (%d candidates)", msg, len(e.Candidates))
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *NotFoundError) Unwrap() error { return ErrLyricsNotFound }

// HasCandidates reports whether the fallback search returned anything.
func (e *NotFoundError) HasCandidates() bool { return len(e.Candidates) > 0 }

// CandidateTitles returns the display strings of the candidates.
func (e *NotFoundError) CandidateTitles() []string {
	titles := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		titles = append(titles, c.DisplayTitle)
	}
	return titles
}
