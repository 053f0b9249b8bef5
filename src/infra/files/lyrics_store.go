package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/contre95/lyricsolid/src/music"
)

// LyricsStore is the filesystem implementation of the lyrics.CacheStore interface.
// Every entry is a UTF-8 text file directly under root.
type LyricsStore struct {
	root string
}

// NewLyricsStore creates a new lyrics store rooted at root. The directory is created on first write.
func NewLyricsStore(root string) *LyricsStore {
	return &LyricsStore{root: root}
}

// Root returns the cache directory.
func (s *LyricsStore) Root() string { return s.root }

// PathFor returns <root>/<artist>_<title>.txt with "/" replaced by "-" and " " by "_".
func (s *LyricsStore) PathFor(artist, title string) string {
	return filepath.Join(s.root, music.NewLookupKey(artist, title).FileName())
}

// Exists reports whether a regular file exists for artist and title.
func (s *LyricsStore) Exists(artist, title string) bool {
	info, err := os.Stat(s.PathFor(artist, title))
	return err == nil && info.Mode().IsRegular()
}

// Read returns the cached lyrics text.
func (s *LyricsStore) Read(artist, title string) (string, error) {
	path := s.PathFor(artist, title)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", music.ErrNotCached
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Write stores text for artist and title, replacing any previous content.
func (s *LyricsStore) Write(artist, title, text string) (string, error) {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := s.PathFor(artist, title)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
