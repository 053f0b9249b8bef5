package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/contre95/lyricsolid/src/music"
)

// LRCLib API response structures
type lrclibSearchResponse []lrclibSong

type lrclibSong struct {
	ID           int     `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// LRCLibOptions configures an LRCLibClient.
type LRCLibOptions struct {
	APIURL            string
	Timeout           time.Duration
	Retries           int
	RequestsPerSecond float64
}

// LRCLibClient implements lyrics.SearchClient for lrclib.net
type LRCLibClient struct {
	http   *httpClient
	apiURL string
}

// NewLRCLibClient creates a new LRCLib client
func NewLRCLibClient(opts LRCLibOptions) *LRCLibClient {
	return &LRCLibClient{
		http:   newHTTPClient(opts.Timeout, opts.Retries, opts.RequestsPerSecond),
		apiURL: strings.TrimRight(opts.APIURL, "/"),
	}
}

func (p *LRCLibClient) Name() string { return "lrclib" }

// SearchExact asks /api/get for the artist and track. A 404 means no match.
func (p *LRCLibClient) SearchExact(ctx context.Context, title, artist string) (*music.Song, error) {
	if title == "" || artist == "" {
		return nil, fmt.Errorf("insufficient search parameters")
	}

	params := url.Values{}
	params.Set("artist_name", artist)
	params.Set("track_name", title)

	resp, err := p.http.get(ctx, p.apiURL+"/api/get?"+params.Encode(), jsonHeader())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LRCLib API request failed with status %d", resp.StatusCode)
	}

	var song lrclibSong
	if err := json.Unmarshal(resp.Body, &song); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if song.Instrumental {
		return nil, nil
	}

	lyrics := song.PlainLyrics
	if lyrics == "" && song.SyncedLyrics != "" {
		lyrics = plainFromSynced(song.SyncedLyrics)
	}

	return &music.Song{
		Title:  song.TrackName,
		Artist: song.ArtistName,
		Lyrics: lyrics,
	}, nil
}

// SearchCandidates lists tracks with the given name as "Track by Artist".
func (p *LRCLibClient) SearchCandidates(ctx context.Context, title string, limit int) ([]music.SearchCandidate, error) {
	if title == "" {
		return nil, fmt.Errorf("insufficient search parameters")
	}

	resp, err := p.http.get(ctx, p.apiURL+"/api/search?"+url.Values{"track_name": {title}}.Encode(), jsonHeader())
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LRCLib API request failed with status %d", resp.StatusCode)
	}

	var searchResp lrclibSearchResponse
	if err := json.Unmarshal(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var candidates []music.SearchCandidate
	for _, song := range searchResp {
		candidates = append(candidates, music.SearchCandidate{
			DisplayTitle: fmt.Sprintf("%s by %s", song.TrackName, song.ArtistName),
		})
		if limit > 0 && len(candidates) == limit {
			break
		}
	}
	return candidates, nil
}

// plainFromSynced drops the "[mm:ss.xx]" timestamps of LRC lines.
func plainFromSynced(synced string) string {
	var plainLines []string
	for _, line := range strings.Split(synced, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "[") {
			if _, rest, ok := strings.Cut(line, "]"); ok {
				line = rest
			}
		}
		plainLines = append(plainLines, strings.TrimSpace(line))
	}
	return strings.Join(plainLines, "\n")
}

func jsonHeader() http.Header {
	header := http.Header{}
	header.Set("Accept", "application/json")
	return header
}
