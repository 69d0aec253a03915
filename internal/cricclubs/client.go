// Package cricclubs fetches and parses the club's statistics pages from
// CricClubs. One client instance is shared by the API server, the daily
// scheduler, and the ingest CLI.
//
// The site sits behind bot protection, so the client sends browser-like
// headers and spaces its requests out with a randomized delay. Fetching is
// strictly sequential — never fan requests out to the site in parallel.
package cricclubs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/tuscricket/clubstats/internal/config"
	"github.com/tuscricket/clubstats/internal/parse"
	"github.com/tuscricket/clubstats/internal/stats"
)

// bot-protection markers in a response body that mean the page is not the
// stats table we asked for.
var blockMarkers = []string{"Cloudflare", "Access Denied"}

// pagePaths maps a category to its team-page path on the site.
var pagePaths = map[parse.Category]string{
	parse.CategoryBatting:  "teamBatting.do",
	parse.CategoryBowling:  "teamBowling.do",
	parse.CategoryFielding: "teamFielding.do",
}

// Client fetches the three category pages for a team.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clubID     string
	teamIDs    map[stats.Format]string
	profile    parse.Profile
	delayMin   time.Duration
	delayMax   time.Duration
	logger     *slog.Logger

	// sleep is swapped out in tests so they do not wait out real delays.
	sleep func(ctx context.Context, d time.Duration)
}

// NewClient creates a CricClubs client from configuration.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	teamIDs := make(map[stats.Format]string, len(cfg.Formats))
	for id, f := range cfg.Formats {
		teamIDs[stats.Format(id)] = f.TeamID
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.CricClubsBaseURL, "/"),
		clubID:     cfg.CricClubsClubID,
		teamIDs:    teamIDs,
		profile:    parse.ProfileByName(cfg.LayoutProfile),
		delayMin:   cfg.FetchDelayMin,
		delayMax:   cfg.FetchDelayMax,
		logger:     logger,
		sleep:      sleepCtx,
	}
}

// FetchCategories fetches and parses the batting, bowling, and fielding
// pages for one format's team, in sequence, with a randomized courtesy
// delay before each request.
//
// A failed category — HTTP error, timeout, or a bot-protection page — is
// logged and contributes an empty map; the remaining categories still
// load. Only context cancellation aborts the whole fetch.
func (c *Client) FetchCategories(ctx context.Context, format stats.Format) (stats.CategorySet, error) {
	teamID, ok := c.teamIDs[format]
	if !ok {
		return stats.CategorySet{}, fmt.Errorf("no team ID configured for format %s", format)
	}

	set := stats.CategorySet{
		Batting:  map[string]stats.Partial{},
		Bowling:  map[string]stats.Partial{},
		Fielding: map[string]stats.Partial{},
	}

	for _, category := range parse.Categories() {
		c.sleep(ctx, c.requestDelay())
		if err := ctx.Err(); err != nil {
			return set, err
		}

		records, err := c.fetchCategory(ctx, teamID, category)
		if err != nil {
			c.logger.Error("Category fetch failed", "format", format, "category", category, "error", err)
			continue
		}
		c.logger.Info("Parsed category page", "format", format, "category", category, "records", len(records))

		switch category {
		case parse.CategoryBatting:
			set.Batting = records
		case parse.CategoryBowling:
			set.Bowling = records
		case parse.CategoryFielding:
			set.Fielding = records
		}
	}

	return set, nil
}

func (c *Client) fetchCategory(ctx context.Context, teamID string, category parse.Category) (map[string]stats.Partial, error) {
	u := fmt.Sprintf("%s/%s?teamId=%s&clubId=%s", c.baseURL, pagePaths[category], teamID, c.clubID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	setBrowserHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", category, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", category, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s page returned %d: %s", category, resp.StatusCode, truncate(body, 200))
	}

	html := string(body)
	for _, marker := range blockMarkers {
		if strings.Contains(html, marker) {
			return nil, fmt.Errorf("bot protection detected on %s page (%q)", category, marker)
		}
	}

	return parse.ParseHTML(html, category, c.profile[category])
}

// requestDelay picks a random delay in [delayMin, delayMax]. The jitter
// keeps the request cadence from looking mechanical to the remote side.
func (c *Client) requestDelay() time.Duration {
	if c.delayMax <= c.delayMin {
		return c.delayMin
	}
	return c.delayMin + time.Duration(rand.Int63n(int64(c.delayMax-c.delayMin)))
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// setBrowserHeaders mimics a desktop browser request. CricClubs serves a
// challenge page to clients with a bare user agent.
func setBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-GB,en-US;q=0.9,en;q=0.8")
	req.Header.Set("Referer", "https://cricclubs.com/")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

// truncate returns a truncated string representation for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
