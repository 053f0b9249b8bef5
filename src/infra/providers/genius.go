package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/contre95/lyricsolid/src/music"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Genius API response structures
type geniusSearchResponse struct {
	Response struct {
		Hits []geniusHit `json:"hits"`
	} `json:"response"`
}

type geniusHit struct {
	Type   string     `json:"type"`
	Result geniusSong `json:"result"`
}

type geniusSong struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	FullTitle     string `json:"full_title"`
	URL           string `json:"url"`
	PrimaryArtist struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

var sectionHeaderLine = regexp.MustCompile(`(?m)^[ \t]*\[[^\]\n]*\][ \t]*\r?$\n?`)

// GeniusOptions configures a GeniusClient.
type GeniusOptions struct {
	AccessToken          string
	APIURL               string
	Timeout              time.Duration
	Retries              int
	RequestsPerSecond    float64
	ExcludedTerms        []string
	SkipNonSongs         bool
	RemoveSectionHeaders bool
}

// GeniusClient implements lyrics.SearchClient for the Genius API. Lyrics are
// scraped from the song page since the API does not return them.
type GeniusClient struct {
	http                 *httpClient
	apiURL               string
	accessToken          string
	excludedTerms        []string
	skipNonSongs         bool
	removeSectionHeaders bool
}

// NewGeniusClient creates a new Genius client
func NewGeniusClient(opts GeniusOptions) *GeniusClient {
	excluded := make([]string, 0, len(opts.ExcludedTerms))
	for _, term := range opts.ExcludedTerms {
		if term = strings.ToLower(strings.TrimSpace(term)); term != "" {
			excluded = append(excluded, term)
		}
	}
	return &GeniusClient{
		http:                 newHTTPClient(opts.Timeout, opts.Retries, opts.RequestsPerSecond),
		apiURL:               strings.TrimRight(opts.APIURL, "/"),
		accessToken:          opts.AccessToken,
		excludedTerms:        excluded,
		skipNonSongs:         opts.SkipNonSongs,
		removeSectionHeaders: opts.RemoveSectionHeaders,
	}
}

func (g *GeniusClient) Name() string { return "genius" }

// SearchExact searches "title artist" and scrapes the lyrics of the best hit.
func (g *GeniusClient) SearchExact(ctx context.Context, title, artist string) (*music.Song, error) {
	hits, err := g.search(ctx, strings.TrimSpace(title+" "+artist), 0)
	if err != nil {
		return nil, err
	}

	hit := g.bestHit(hits, title, artist)
	if hit == nil {
		return nil, nil
	}

	lyrics, err := g.fetchLyrics(ctx, hit.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lyrics: %w", err)
	}
	if g.removeSectionHeaders {
		lyrics = sectionHeaderLine.ReplaceAllString(lyrics, "")
	}

	return &music.Song{
		Title:  hit.Title,
		Artist: hit.PrimaryArtist.Name,
		Lyrics: lyrics,
		URL:    hit.URL,
	}, nil
}

// SearchCandidates searches by title only and returns the full titles of the hits.
func (g *GeniusClient) SearchCandidates(ctx context.Context, title string, limit int) ([]music.SearchCandidate, error) {
	hits, err := g.search(ctx, title, limit)
	if err != nil {
		return nil, err
	}

	var candidates []music.SearchCandidate
	for _, hit := range hits {
		if g.skipNonSongs && hit.Type != "song" {
			continue
		}
		display := hit.Result.FullTitle
		if display == "" {
			display = "?"
		}
		candidates = append(candidates, music.SearchCandidate{DisplayTitle: display})
		if limit > 0 && len(candidates) == limit {
			break
		}
	}
	return candidates, nil
}

func (g *GeniusClient) search(ctx context.Context, query string, perPage int) ([]geniusHit, error) {
	if query == "" {
		return nil, fmt.Errorf("insufficient search parameters")
	}

	params := url.Values{}
	params.Set("q", query)
	if perPage > 0 {
		params.Set("per_page", strconv.Itoa(perPage))
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+g.accessToken)
	header.Set("Accept", "application/json")

	resp, err := g.http.get(ctx, g.apiURL+"/search?"+params.Encode(), header)
	if err != nil {
		return nil, err
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("Genius rejected the access token (status %d)", resp.StatusCode)
	default:
		return nil, fmt.Errorf("Genius API request failed with status %d", resp.StatusCode)
	}

	var searchResp geniusSearchResponse
	if err := json.Unmarshal(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return searchResp.Response.Hits, nil
}

// bestHit picks the first hit matching both title and artist, then the first
// title match, then the first hit with lyrics.
func (g *GeniusClient) bestHit(hits []geniusHit, title, artist string) *geniusSong {
	var titleMatch, firstLyrics *geniusSong
	for i := range hits {
		hit := &hits[i]
		if !g.isLyrics(hit) {
			continue
		}
		if firstLyrics == nil {
			firstLyrics = &hit.Result
		}
		if !sameName(hit.Result.Title, title) {
			continue
		}
		if sameName(hit.Result.PrimaryArtist.Name, artist) {
			return &hit.Result
		}
		if titleMatch == nil {
			titleMatch = &hit.Result
		}
	}
	if titleMatch != nil {
		return titleMatch
	}
	return firstLyrics
}

func (g *GeniusClient) isLyrics(hit *geniusHit) bool {
	if g.skipNonSongs && hit.Type != "song" {
		return false
	}
	if hit.Result.URL == "" {
		return false
	}
	title := strings.ToLower(hit.Result.Title)
	for _, term := range g.excludedTerms {
		if strings.Contains(title, term) {
			return false
		}
	}
	return true
}

func (g *GeniusClient) fetchLyrics(ctx context.Context, songURL string) (string, error) {
	resp, err := g.http.get(ctx, songURL, nil)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lyrics page request failed with status %d", resp.StatusCode)
	}
	if strings.Contains(resp.URL, "404") {
		return "", fmt.Errorf("redirected to error page: %s", resp.URL)
	}

	return extractGeniusLyrics(resp.Body)
}

// extractGeniusLyrics collects the text of every data-lyrics-container div,
// turning <br> into newlines and skipping annotation chrome.
func extractGeniusLyrics(page []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse lyrics page: %w", err)
	}

	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Div && attr(n, "data-lyrics-container") == "true" {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			writeText(&b, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return b.String(), nil
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if n.DataAtom == atom.Br {
			b.WriteString("\n")
			return
		}
		if attr(n, "data-exclude-from-selection") == "true" {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
