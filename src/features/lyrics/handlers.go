package lyrics

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/contre95/lyricsolid/src/music"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

var validate = validator.New()

// Handler handles lyrics requests
type Handler struct {
	service *Service
}

// NewHandler creates a new lyrics handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// LyricsRequest is the body of POST /api/v1/lyrics. Save defaults to true.
type LyricsRequest struct {
	Artist    string `json:"artist" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Save      *bool  `json:"save"`
	Overwrite bool   `json:"overwrite"`
}

// LyricsResponse is returned by both lyrics endpoints
type LyricsResponse struct {
	Artist    string  `json:"artist"`
	Title     string  `json:"title"`
	Lyrics    string  `json:"lyrics"`
	FromCache bool    `json:"from_cache"`
	SavedPath *string `json:"saved_path"`
}

// LookupResponse is a single entry of the lookup history
type LookupResponse struct {
	ID         string   `json:"id"`
	Artist     string   `json:"artist"`
	Title      string   `json:"title"`
	Origin     string   `json:"origin"`
	Found      bool     `json:"found"`
	SavedPath  string   `json:"saved_path,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

// GetCachedLyrics returns lyrics already present in the cache, it never queries the provider.
func (h *Handler) GetCachedLyrics(c *fiber.Ctx) error {
	artist := strings.TrimSpace(c.Query("artist"))
	title := strings.TrimSpace(c.Query("title"))
	if artist == "" || title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "artist and title are required"})
	}

	doc, err := h.service.Cached(c.Context(), artist, title)
	if err != nil {
		if !errors.Is(err, music.ErrNotCached) {
			slog.Warn("Failed to read cached lyrics", "artist", artist, "title", title, "error", err)
		}
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "lyrics not cached"})
	}

	return c.JSON(newLyricsResponse(doc))
}

// ResolveLyrics serves cached lyrics or fetches them from the provider.
func (h *Handler) ResolveLyrics(c *fiber.Ctx) error {
	var req LyricsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	req.Artist = strings.TrimSpace(req.Artist)
	req.Title = strings.TrimSpace(req.Title)
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	save := true
	if req.Save != nil {
		save = *req.Save
	}

	doc, err := h.service.Resolve(c.Context(), req.Artist, req.Title, save, req.Overwrite)
	if err != nil {
		var notFound *music.NotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail":     "lyrics not found",
				"candidates": notFound.CandidateTitles(),
			})
		}
		slog.Error("Failed to resolve lyrics", "artist", req.Artist, "title", req.Title, "error", err)
		return err
	}

	slog.Info("Lyrics resolved", "artist", req.Artist, "title", req.Title, "origin", doc.Origin, "lyricsLength", len(doc.Text))
	return c.JSON(newLyricsResponse(doc))
}

// GetHistory returns the most recent lookups.
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	lookups, err := h.service.RecentLookups(c.Context(), limit)
	if err != nil {
		slog.Error("Error loading lookup history", "error", err)
		return err
	}

	resp := make([]LookupResponse, 0, len(lookups))
	for _, l := range lookups {
		resp = append(resp, LookupResponse{
			ID:         l.ID,
			Artist:     l.Artist,
			Title:      l.Title,
			Origin:     string(l.Origin),
			Found:      l.Found,
			SavedPath:  l.SavedPath,
			Candidates: l.Candidates,
			CreatedAt:  l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(resp)
}

func newLyricsResponse(doc *music.LyricsDocument) LyricsResponse {
	resp := LyricsResponse{
		Artist:    doc.Artist,
		Title:     doc.Title,
		Lyrics:    doc.Text,
		FromCache: doc.FromCache(),
	}
	if doc.SavedPath != "" {
		path := doc.SavedPath
		resp.SavedPath = &path
	}
	return resp
}
