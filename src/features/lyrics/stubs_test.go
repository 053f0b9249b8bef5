package lyrics

import (
	"context"
	"errors"
	"sync"

	"github.com/contre95/lyricsolid/src/music"
)

// stubClient is a call-counting SearchClient
type stubClient struct {
	song       *music.Song
	exactErr   error
	candidates []music.SearchCandidate
	candErr    error

	exactCalls     int
	candidateCalls int
	lastLimit      int
}

func (c *stubClient) SearchExact(ctx context.Context, title, artist string) (*music.Song, error) {
	c.exactCalls++
	return c.song, c.exactErr
}

func (c *stubClient) SearchCandidates(ctx context.Context, title string, limit int) ([]music.SearchCandidate, error) {
	c.candidateCalls++
	c.lastLimit = limit
	return c.candidates, c.candErr
}

func (c *stubClient) Name() string { return "stub" }

func candidates(titles ...string) []music.SearchCandidate {
	out := make([]music.SearchCandidate, 0, len(titles))
	for _, t := range titles {
		out = append(out, music.SearchCandidate{DisplayTitle: t})
	}
	return out
}

// memoryHistory keeps lookups in memory
type memoryHistory struct {
	mu      sync.Mutex
	lookups []music.Lookup
	err     error
}

func (h *memoryHistory) RecordLookup(ctx context.Context, lookup music.Lookup) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.lookups = append(h.lookups, lookup)
	return nil
}

func (h *memoryHistory) RecentLookups(ctx context.Context, limit int) ([]music.Lookup, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]music.Lookup, 0, limit)
	for i := len(h.lookups) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.lookups[i])
	}
	return out, nil
}

// failingStore is a CacheStore whose writes always fail
type failingStore struct {
	CacheStore
}

func (s failingStore) Write(artist, title, text string) (string, error) {
	return "", errors.New("disk full")
}
