package esake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultBaseURL is the public esake.gr site.
	DefaultBaseURL = "http://www.esake.gr"

	// UserAgent is sent with list page requests; the site rejects Go's default.
	UserAgent = "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/46.0.2490.80 Safari/537.36"

	championshipID = "0000000D"
)

var (
	ErrNoGameID      = errors.New("no game id provided")
	ErrUnknownSeason = errors.New("unknown season")
)

// Seasons maps the season labels accepted on the command line to site ids.
var Seasons = map[string]int{
	"regular":   1,
	"play_offs": 2,
}

var gameIDPattern = regexp.MustCompile(`idgame=(.{8})`)

// Client fetches esake.gr list pages.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL, or the public site when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	log.Printf("[esake-client] Using base URL %s", baseURL)
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SeriesURL is the results page listing every game of one series.
func (c *Client) SeriesURL(season string, series int) (string, error) {
	id, ok := Seasons[season]
	if !ok {
		return "", fmt.Errorf("%w %q: must be regular or play_offs", ErrUnknownSeason, season)
	}
	return fmt.Sprintf("%s/el/action/EsakeResults?idchampionship=%s&idteam=&idseason=0000000%d&series=%02d",
		c.baseURL, championshipID, id, series), nil
}

// GameURL is the box score page of one game.
func (c *Client) GameURL(gameID string) (string, error) {
	if gameID == "" {
		return "", ErrNoGameID
	}
	return fmt.Sprintf("%s/el/action/EsakegameView?idgame=%s&mode=2", c.baseURL, gameID), nil
}

// FetchSeries returns the raw HTML of a series results page.
func (c *Client) FetchSeries(ctx context.Context, season string, series int) (string, error) {
	url, err := c.SeriesURL(season, series)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Content-Type", "text/html")

	log.Printf("[esake-client] GET %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching series page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching series page: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading series page: %w", err)
	}
	return string(body), nil
}

// GameIDs lists the games of one series.
func (c *Client) GameIDs(ctx context.Context, season string, series int) ([]string, error) {
	html, err := c.FetchSeries(ctx, season, series)
	if err != nil {
		return nil, err
	}
	ids, err := ParseGameIDs(html)
	if err != nil {
		return nil, err
	}
	log.Printf("[esake-client] Found %d games in %s series %d", len(ids), season, series)
	return ids, nil
}

// ParseGameIDs extracts every game id linked from a list page, in order of
// first appearance and without duplicates. Every attribute and inline script
// is searched because the site builds some game links in javascript, then the
// whole document as a fallback.
func ParseGameIDs(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var ids []string
	seen := make(map[string]bool)
	collect := func(s string) {
		for _, m := range gameIDPattern.FindAllStringSubmatch(s, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				ids = append(ids, m[1])
			}
		}
	}

	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		for _, attr := range s.Nodes[0].Attr {
			collect(attr.Val)
		}
		if goquery.NodeName(s) == "script" {
			collect(s.Text())
		}
	})
	// Ids in plain text or markup the parser dropped.
	collect(doc.Text())
	collect(html)
	return ids, nil
}
