package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/contre95/lyricsolid/src/features/config"
	"github.com/contre95/lyricsolid/src/features/lyrics"
	"github.com/contre95/lyricsolid/src/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type cannedClient struct {
	song       *music.Song
	candidates []music.SearchCandidate
	calls      int
}

func (c *cannedClient) SearchExact(ctx context.Context, title, artist string) (*music.Song, error) {
	c.calls++
	return c.song, nil
}

func (c *cannedClient) SearchCandidates(ctx context.Context, title string, limit int) ([]music.SearchCandidate, error) {
	return c.candidates, nil
}

func (c *cannedClient) Name() string { return "canned" }

type cliHarness struct {
	stdout, stderr bytes.Buffer
	cacheDir       string
	configPath     string
	client         *cannedClient
	seenConfig     *config.Config
}

func newHarness(t *testing.T, client *cannedClient) *cliHarness {
	t.Helper()
	dir := t.TempDir()
	h := &cliHarness{
		cacheDir:   filepath.Join(dir, "lyrics"),
		configPath: filepath.Join(dir, "config.yaml"),
		client:     client,
	}
	body := "cachePath: " + h.cacheDir + "\nlogger:\n  enabled: false\ndatabase:\n  enabled: false\n"
	require.NoError(t, os.WriteFile(h.configPath, []byte(body), 0644))
	return h
}

func (h *cliHarness) run(args ...string) error {
	runner := NewRunner(RunnerOpts{
		Stdout: &h.stdout,
		Stderr: &h.stderr,
		NewClient: func(cfg *config.Config) lyrics.SearchClient {
			h.seenConfig = cfg
			return h.client
		},
	})
	app := runner.command()
	app.ExitErrHandler = func(ctx context.Context, cmd *cli.Command, err error) {}
	return app.Run(context.Background(), append([]string{"lyricsolid"}, args...))
}

func TestFetch_PrintsBannerAndLyrics(t *testing.T) {
	h := newHarness(t, &cannedClient{song: &music.Song{Lyrics: "Hello, it's me\n\n\nI was wondering"}})

	err := h.run("fetch", "-a", "Adele", "-t", "Hello", "--no-color", "--config", h.configPath)
	require.NoError(t, err)

	assert.Equal(t, "=============\nAdele - Hello\n=============\nHello, it's me\n\nI was wondering\n", h.stdout.String())
	assert.Empty(t, h.stderr.String())
	assert.NoFileExists(t, filepath.Join(h.cacheDir, "Adele_Hello.txt"))
}

func TestFetch_SaveWritesCacheAndReportsPath(t *testing.T) {
	h := newHarness(t, &cannedClient{song: &music.Song{Lyrics: "Hello, it's me"}})

	err := h.run("fetch", "-a", "Adele", "-t", "Hello", "--save", "--no-color", "--config", h.configPath)
	require.NoError(t, err)

	path := filepath.Join(h.cacheDir, "Adele_Hello.txt")
	assert.FileExists(t, path)
	assert.Equal(t, "[saved] "+path+"\n", h.stderr.String())
}

func TestFetch_ServesCacheUnlessOverwrite(t *testing.T) {
	client := &cannedClient{song: &music.Song{Lyrics: "fresh"}}
	h := newHarness(t, client)
	require.NoError(t, os.MkdirAll(h.cacheDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(h.cacheDir, "Adele_Hello.txt"), []byte("cached\n"), 0644))

	require.NoError(t, h.run("fetch", "-a", "Adele", "-t", "Hello", "--no-color", "--config", h.configPath))
	assert.Contains(t, h.stdout.String(), "cached\n")
	assert.Contains(t, h.stderr.String(), "[cached]")
	assert.Equal(t, 0, client.calls)

	h.stdout.Reset()
	require.NoError(t, h.run("fetch", "-a", "Adele", "-t", "Hello", "--save", "--overwrite", "--no-color", "--config", h.configPath))
	assert.Contains(t, h.stdout.String(), "fresh\n")
	assert.Equal(t, 1, client.calls)
}

func TestFetch_NotFoundExitsWithCode2(t *testing.T) {
	h := newHarness(t, &cannedClient{candidates: []music.SearchCandidate{
		{DisplayTitle: "Hello by Adele"},
		{DisplayTitle: "Hello by Lionel Richie"},
	}})

	err := h.run("fetch", "-a", "Adel", "-t", "Hello", "--no-color", "--config", h.configPath)

	var exitErr cli.ExitCoder
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, exitNotFound, exitErr.ExitCode())
	assert.Empty(t, h.stdout.String())
	assert.Contains(t, h.stderr.String(), "  1. Hello by Adele\n  2. Hello by Lionel Richie\n")
}

func TestFetch_FlagsOverrideConfig(t *testing.T) {
	h := newHarness(t, &cannedClient{song: &music.Song{Lyrics: "x"}})
	otherDir := filepath.Join(t.TempDir(), "elsewhere")

	err := h.run("fetch", "-a", "Adele", "-t", "Hello", "--timeout", "4", "--retries", "1",
		"--cache-dir", otherDir, "--save", "--no-color", "--config", h.configPath)
	require.NoError(t, err)

	require.NotNil(t, h.seenConfig)
	assert.Equal(t, 4, h.seenConfig.Genius.Timeout)
	assert.Equal(t, 1, h.seenConfig.Genius.Retries)
	assert.Equal(t, otherDir, h.seenConfig.CachePath)
	assert.FileExists(t, filepath.Join(otherDir, "Adele_Hello.txt"))
}

func TestFetch_DefaultFlagsKeepConfigValues(t *testing.T) {
	h := newHarness(t, &cannedClient{song: &music.Song{Lyrics: "x"}})

	require.NoError(t, h.run("fetch", "-a", "Adele", "-t", "Hello", "--no-color", "--config", h.configPath))

	assert.Equal(t, 10, h.seenConfig.Genius.Timeout)
	assert.Equal(t, 3, h.seenConfig.Genius.Retries)
}

func TestNewSearchClient_FollowsProvider(t *testing.T) {
	assert.Equal(t, "lrclib", newSearchClient(&config.Config{Provider: "lrclib"}).Name())
	assert.Equal(t, "genius", newSearchClient(&config.Config{Provider: "genius"}).Name())
}
