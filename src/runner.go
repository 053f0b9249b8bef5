package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/contre95/lyricsolid/src/features/config"
	"github.com/contre95/lyricsolid/src/features/hosting"
	"github.com/contre95/lyricsolid/src/features/logging"
	"github.com/contre95/lyricsolid/src/features/lyrics"
	"github.com/contre95/lyricsolid/src/features/ui"
	"github.com/contre95/lyricsolid/src/infra/database"
	"github.com/contre95/lyricsolid/src/infra/files"
	"github.com/contre95/lyricsolid/src/infra/providers"
	"github.com/contre95/lyricsolid/src/music"
	"github.com/urfave/cli/v3"
)

const exitNotFound = 2

// ClientFactory builds the SearchClient selected by the configuration.
type ClientFactory func(cfg *config.Config) lyrics.SearchClient

// Runner holds the dependencies of the CLI commands.
type Runner struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient ClientFactory
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Stdout    io.Writer
	Stderr    io.Writer
	NewClient ClientFactory
}

// NewRunner creates a new Runner, falling back to os.Stdout, os.Stderr and the
// configured remote provider.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.NewClient == nil {
		opts.NewClient = newSearchClient
	}
	return &Runner{stdout: opts.Stdout, stderr: opts.Stderr, newClient: opts.NewClient}
}

func (r *Runner) command() *cli.Command {
	return &cli.Command{
		Name:     "lyricsolid",
		Usage:    "Fetch, clean and cache song lyrics",
		Version:  "0.1.0",
		Commands: []*cli.Command{fetchCommand(r), serveCommand(r)},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.yaml",
	}
}

func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Print the lyrics of a song",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Artist name (e.g. Adele)", Required: true},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Song title (e.g. Hello)", Required: true},
			&cli.BoolFlag{Name: "save", Usage: "Save the lyrics to the cache directory"},
			&cli.BoolFlag{Name: "overwrite", Usage: "Fetch again even when the lyrics are cached"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
			&cli.IntFlag{Name: "timeout", Usage: "HTTP timeout in seconds", Value: 10},
			&cli.IntFlag{Name: "retries", Usage: "Retry count for failed requests", Value: 3},
			&cli.StringFlag{Name: "cache-dir", Usage: "Directory holding cached lyrics"},
			configFlag(),
		},
		Action: r.Fetch,
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the lyrics HTTP API",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on"},
			configFlag(),
		},
		Action: r.Serve,
	}
}

// Fetch resolves a single song and prints it framed by a banner.
func (r *Runner) Fetch(ctx context.Context, cmd *cli.Command) error {
	cfgManager, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := cfgManager.Get()

	history := openHistory(cfg)
	if history != nil {
		defer history.Close()
	}
	service := r.newService(cfg, history)

	artist, title := cmd.String("artist"), cmd.String("title")
	palette := ui.NewPalette(!cmd.Bool("no-color"))

	doc, err := service.Resolve(ctx, artist, title, cmd.Bool("save"), cmd.Bool("overwrite"))
	if err != nil {
		var notFound *music.NotFoundError
		if errors.As(err, &notFound) {
			r.printCandidates(palette, notFound)
			return cli.Exit(palette.Err("Could not find lyrics for "+artist+" - "+title), exitNotFound)
		}
		return err
	}

	fmt.Fprint(r.stdout, palette.Banner(artist+" - "+title))
	fmt.Fprint(r.stdout, doc.Text)

	switch {
	case doc.FromCache():
		fmt.Fprintln(r.stderr, palette.OK("[cached] "+doc.SavedPath))
	case doc.SavedPath != "":
		fmt.Fprintln(r.stderr, palette.OK("[saved] "+doc.SavedPath))
	}
	return nil
}

func (r *Runner) printCandidates(palette *ui.Palette, notFound *music.NotFoundError) {
	if !notFound.HasCandidates() {
		fmt.Fprintln(r.stderr, palette.Warn("No candidates found."))
		return
	}
	fmt.Fprintln(r.stderr, palette.Warn("No exact match, closest candidates:"))
	for i, title := range notFound.CandidateTitles() {
		fmt.Fprintf(r.stderr, "  %d. %s\n", i+1, title)
	}
}

// Serve runs the HTTP API until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfgManager, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := cfgManager.Get()

	history := openHistory(cfg)
	if history != nil {
		defer history.Close()
	}

	service := r.newService(cfg, history)
	server := hosting.NewServer(cfgManager, service)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()
	slog.Info("Server started. Press Ctrl+C to shut down.", "port", cfg.Server.Port, "provider", service.ProviderName())

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	slog.Info("Server gracefully shut down.")
	return nil
}

// loadConfig reads the config file, applies command line overrides and sets up logging.
func (r *Runner) loadConfig(cmd *cli.Command) (*config.Manager, error) {
	cfgManager, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := *cfgManager.Get()
	if cmd.IsSet("timeout") {
		cfg.Genius.Timeout = int(cmd.Int("timeout"))
		cfg.LRCLib.Timeout = int(cmd.Int("timeout"))
	}
	if cmd.IsSet("retries") {
		cfg.Genius.Retries = int(cmd.Int("retries"))
		cfg.LRCLib.Retries = int(cmd.Int("retries"))
	}
	if dir := cmd.String("cache-dir"); dir != "" {
		cfg.CachePath = dir
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = uint32(cmd.Uint("port"))
	}
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	cfgManager.Update(&cfg)
	if err := cfgManager.EnsureDirectories(); err != nil {
		return nil, err
	}

	slog.SetDefault(logging.SetupLogger(cfgManager))
	return cfgManager, nil
}

func (r *Runner) newService(cfg *config.Config, history *database.SqliteHistory) *lyrics.Service {
	store := files.NewLyricsStore(cfg.CachePath)
	provider := lyrics.NewProvider(r.newClient(cfg))
	if history == nil {
		// A nil *SqliteHistory inside the interface would not compare equal to nil
		return lyrics.NewService(store, provider, nil)
	}
	return lyrics.NewService(store, provider, history)
}

// openHistory opens the lookup history when enabled. Failures only disable it.
func openHistory(cfg *config.Config) *database.SqliteHistory {
	if !cfg.Database.Enabled {
		return nil
	}
	history, err := database.NewSqliteHistory(cfg.Database.Path)
	if err != nil {
		slog.Warn("Lookup history disabled", "path", cfg.Database.Path, "error", err)
		return nil
	}
	return history
}

func newSearchClient(cfg *config.Config) lyrics.SearchClient {
	switch cfg.Provider {
	case "lrclib":
		return providers.NewLRCLibClient(providers.LRCLibOptions{
			APIURL:            cfg.LRCLib.APIURL,
			Timeout:           time.Duration(cfg.LRCLib.Timeout) * time.Second,
			Retries:           cfg.LRCLib.Retries,
			RequestsPerSecond: cfg.LRCLib.RequestsPerSecond,
		})
	default:
		return providers.NewGeniusClient(providers.GeniusOptions{
			AccessToken:          cfg.Genius.AccessToken,
			APIURL:               cfg.Genius.APIURL,
			Timeout:              time.Duration(cfg.Genius.Timeout) * time.Second,
			Retries:              cfg.Genius.Retries,
			RequestsPerSecond:    cfg.Genius.RequestsPerSecond,
			ExcludedTerms:        cfg.Genius.ExcludedTerms,
			SkipNonSongs:         cfg.Genius.SkipNonSongs,
			RemoveSectionHeaders: cfg.Genius.RemoveSectionHeaders,
		})
	}
}
