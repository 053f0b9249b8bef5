package lyrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/lyricsolid/src/infra/files"
	"github.com/contre95/lyricsolid/src/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, client *stubClient) (*Service, *files.LyricsStore, *memoryHistory) {
	t.Helper()
	store := files.NewLyricsStore(t.TempDir())
	history := &memoryHistory{}
	return NewService(store, NewProvider(client), history), store, history
}

func TestResolve_CacheHitSkipsProvider(t *testing.T) {
	client := &stubClient{song: &music.Song{Lyrics: "remote"}}
	service, store, _ := newTestService(t, client)
	path, err := store.Write("Adele", "Hello", "cached lyrics\n")
	require.NoError(t, err)

	doc, err := service.Resolve(context.Background(), "Adele", "Hello", true, false)
	require.NoError(t, err)

	assert.Equal(t, 0, client.exactCalls)
	assert.Equal(t, 0, client.candidateCalls)
	assert.Equal(t, "cached lyrics\n", doc.Text)
	assert.Equal(t, music.OriginCache, doc.Origin)
	assert.Equal(t, path, doc.SavedPath)
}

func TestResolve_OverwriteRefetchesAndReplacesFile(t *testing.T) {
	client := &stubClient{song: &music.Song{Lyrics: "fresh lyrics"}}
	service, store, _ := newTestService(t, client)
	_, err := store.Write("Adele", "Hello", "stale lyrics\n")
	require.NoError(t, err)

	doc, err := service.Resolve(context.Background(), "Adele", "Hello", true, true)
	require.NoError(t, err)

	assert.Equal(t, 1, client.exactCalls)
	assert.Equal(t, music.OriginRemote, doc.Origin)
	assert.Equal(t, store.PathFor("Adele", "Hello"), doc.SavedPath)

	content, err := os.ReadFile(store.PathFor("Adele", "Hello"))
	require.NoError(t, err)
	assert.Equal(t, "fresh lyrics\n", string(content))
}

func TestResolve_SaveFalseDoesNotPersist(t *testing.T) {
	client := &stubClient{song: &music.Song{Lyrics: "some lyrics"}}
	service, store, _ := newTestService(t, client)

	doc, err := service.Resolve(context.Background(), "Adele", "Hello", false, false)
	require.NoError(t, err)

	assert.Equal(t, 1, client.exactCalls)
	assert.Equal(t, "some lyrics\n", doc.Text)
	assert.Empty(t, doc.SavedPath)
	assert.NoFileExists(t, store.PathFor("Adele", "Hello"))
	entries, err := os.ReadDir(store.Root())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolve_NotFoundWithoutCandidates(t *testing.T) {
	client := &stubClient{}
	service, store, history := newTestService(t, client)

	doc, err := service.Resolve(context.Background(), "Nobody", "Nothing", true, false)
	assert.Nil(t, doc)

	var notFound *music.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.False(t, notFound.HasCandidates())
	assert.NoFileExists(t, store.PathFor("Nobody", "Nothing"))

	require.Len(t, history.lookups, 1)
	assert.False(t, history.lookups[0].Found)
}

func TestResolve_NotFoundCarriesCandidatesInOrder(t *testing.T) {
	client := &stubClient{candidates: candidates("Hello by Adele", "Hello by Lionel Richie", "Hello by Evanescence")}
	service, _, history := newTestService(t, client)

	_, err := service.Resolve(context.Background(), "Adel", "Hello", true, false)

	var notFound *music.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"Hello by Adele", "Hello by Lionel Richie", "Hello by Evanescence"}, notFound.CandidateTitles())
	require.Len(t, history.lookups, 1)
	assert.Equal(t, notFound.CandidateTitles(), history.lookups[0].Candidates)
}

func TestResolve_CacheWriteFailureIsFatal(t *testing.T) {
	client := &stubClient{song: &music.Song{Lyrics: "some lyrics"}}
	store := files.NewLyricsStore(t.TempDir())
	service := NewService(failingStore{CacheStore: store}, NewProvider(client), nil)

	doc, err := service.Resolve(context.Background(), "Adele", "Hello", true, false)
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, music.ErrCacheWrite)
	assert.NotErrorIs(t, err, music.ErrLyricsNotFound)
}

func TestResolve_HistoryFailureIsIgnored(t *testing.T) {
	client := &stubClient{song: &music.Song{Lyrics: "some lyrics"}}
	store := files.NewLyricsStore(t.TempDir())
	history := &memoryHistory{err: errors.New("database is locked")}
	service := NewService(store, NewProvider(client), history)

	doc, err := service.Resolve(context.Background(), "Adele", "Hello", false, false)
	require.NoError(t, err)
	assert.Equal(t, "some lyrics\n", doc.Text)
}

func TestResolve_EndToEndAdeleHello(t *testing.T) {
	raw := "[Verse 1]\nHello, it's me\n\n[Chorus]\nHello from the other side\n\n[Chorus]\nHello from the other side\nhttps://genius.com/Adele-hello-lyrics\n"
	client := &stubClient{song: &music.Song{Title: "Hello", Artist: "Adele", Lyrics: raw}}
	service, store, history := newTestService(t, client)

	doc, err := service.Resolve(context.Background(), "Adele", "Hello", true, false)
	require.NoError(t, err)

	want := "[Verse 1]\nHello, it's me\n\n[Chorus]\nHello from the other side\n\nHello from the other side\n"
	assert.Equal(t, want, doc.Text)
	assert.NotContains(t, doc.Text, "genius.com")
	assert.Equal(t, filepath.Join(store.Root(), "Adele_Hello.txt"), doc.SavedPath)

	content, err := os.ReadFile(doc.SavedPath)
	require.NoError(t, err)
	assert.Equal(t, doc.Text, string(content))

	require.Len(t, history.lookups, 1)
	assert.True(t, history.lookups[0].Found)
	assert.Equal(t, music.OriginRemote, history.lookups[0].Origin)
	assert.NotEmpty(t, history.lookups[0].ID)
}

func TestCached_MissingEntry(t *testing.T) {
	service, _, _ := newTestService(t, &stubClient{})

	_, err := service.Cached(context.Background(), "Adele", "Hello")
	assert.ErrorIs(t, err, music.ErrNotCached)
}

func TestRecentLookups_WithoutHistory(t *testing.T) {
	service := NewService(files.NewLyricsStore(t.TempDir()), NewProvider(&stubClient{}), nil)

	lookups, err := service.RecentLookups(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, lookups)
}
