package nbastats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const (
	// BaseURL for the public stats API
	BaseURL = "https://stats.nba.com/stats"

	maxAttempts  = 5
	requestLimit = 15 * time.Second
)

// ErrSourceUnavailable reports that a source could not be retrieved after
// the attempt ceiling. Callers treat the table as absent and degrade.
var ErrSourceUnavailable = errors.New("stats source unavailable")

// Client handles stats API requests. The API rejects non-browser clients,
// so every request carries the headers the site's own frontend sends.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// NewClient creates a stats API client. An empty baseURL uses the live API.
func NewClient(baseURL string, logger *log.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[nbastats] ", log.LstdFlags)
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestLimit},
		logger:  logger,
	}
}

// FetchLeagueLeaders fetches per-game player stats for one season and
// season type ("Regular Season" or "Playoffs").
func (c *Client) FetchLeagueLeaders(ctx context.Context, seasonLabel, seasonType string) (*ResultSet, error) {
	params := url.Values{
		"LeagueID":     {"00"},
		"PerMode":      {"PerGame"},
		"Scope":        {"S"},
		"Season":       {seasonLabel},
		"SeasonType":   {seasonType},
		"StatCategory": {"PTS"},
	}

	var payload leagueLeadersResponse
	if err := c.fetch(ctx, "/leagueLeaders", params, &payload); err != nil {
		return nil, err
	}
	return &payload.ResultSet, nil
}

// FetchStandings fetches team standings (including win rate) for one season.
func (c *Client) FetchStandings(ctx context.Context, seasonLabel string) (*ResultSet, error) {
	params := url.Values{
		"GroupBy":    {"conf"},
		"LeagueID":   {"00"},
		"Season":     {seasonLabel},
		"SeasonType": {"Regular Season"},
		"Section":    {"overall"},
	}

	var payload standingsResponse
	if err := c.fetch(ctx, "/leaguestandingsv3", params, &payload); err != nil {
		return nil, err
	}
	if len(payload.ResultSets) == 0 {
		return nil, fmt.Errorf("standings response has no result sets: %w", ErrSourceUnavailable)
	}
	return &payload.ResultSets[0], nil
}

// fetch GETs a stats endpoint with bounded retries. Transient server errors
// and non-JSON bodies are retried with a progressive wait (attempt x 10s);
// after the attempt ceiling the source is reported unavailable.
func (c *Client) fetch(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.doRequest(ctx, endpoint, out); err != nil {
			lastErr = err
			c.logger.Printf("attempt %d/%d for %s failed: %v", attempt, maxAttempts, path, err)

			if attempt == maxAttempts {
				break
			}
			wait := time.Duration(attempt) * 10 * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}
		return nil
	}

	return fmt.Errorf("%s after %d attempts: %w (%v)", path, maxAttempts, ErrSourceUnavailable, lastErr)
}

func (c *Client) doRequest(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Referer", "https://www.nba.com/stats/")
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("server error: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if len(body) == 0 || body[0] == '<' {
		return fmt.Errorf("non-JSON response (first bytes: %q)", firstBytes(body, 60))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func firstBytes(b []byte, n int) string {
	if len(b) < n {
		n = len(b)
	}
	return string(b[:n])
}
