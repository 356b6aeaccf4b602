package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sunatthegilddotcom/wiki-tSNE/internal/logger"
)

// Config holds the connection details for the MediaWiki action API.
type Config struct {
	// Language selects the wiki host ("en" → en.wikipedia.org). Ignored when
	// BaseURL is set.
	Language string
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL    string
	UserAgent  string
	FetchDelay time.Duration
	Timeout    time.Duration
}

// Client fetches article collections from Wikipedia. Individual article
// failures are logged and the article is skipped; the policy is deliberately
// skip-and-continue with no retry, so a flaky article is simply absent from
// the corpus.
type Client struct {
	baseURL    string
	userAgent  string
	delay      time.Duration
	httpClient *http.Client
	logger     *logger.Logger
}

// APIError reports a non-200 response from the MediaWiki API.
type APIError struct {
	StatusCode int
	Status     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("wikipedia API returned %s", e.Status)
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		lang := cfg.Language
		if lang == "" {
			lang = "en"
		}
		base = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		delay:      cfg.FetchDelay,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// LoadCorpus resolves the seed into article titles and fetches a plain-text
// extract for each, pausing the configured delay between requests to stay
// polite with the remote service. At most limit articles are returned.
func (c *Client) LoadCorpus(ctx context.Context, seed string, limit int) (map[string]string, error) {
	titles, err := c.ArticleTitles(ctx, seed, limit)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", seed, err)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("seed %q yielded no article titles", seed)
	}

	texts := make(map[string]string, len(titles))
	for i, title := range titles {
		if i > 0 {
			if err := c.pause(ctx); err != nil {
				return nil, err
			}
		}
		text, err := c.Extract(ctx, title)
		if err != nil {
			c.logger.Warnf("skipping %q: %v", title, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			c.logger.Warnf("skipping %q: empty extract", title)
			continue
		}
		texts[title] = text
		c.logger.Debugf("fetched %q (%d/%d)", title, i+1, len(titles))
	}
	return texts, nil
}

// ArticleTitles expands the seed into a list of article titles. A
// "Category:..." seed lists the category members; any other seed lists the
// articles linked from that page, with the seed article itself first.
func (c *Client) ArticleTitles(ctx context.Context, seed string, limit int) ([]string, error) {
	if strings.HasPrefix(seed, "Category:") {
		return c.categoryMembers(ctx, seed, limit)
	}
	titles := []string{seed}
	linked, err := c.pageLinks(ctx, seed, limit)
	if err != nil {
		return nil, err
	}
	titles = append(titles, linked...)
	return capTitles(titles, limit), nil
}

// Extract fetches the plain-text extract of a single article.
func (c *Client) Extract(ctx context.Context, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("redirects", "1")
	params.Set("titles", title)

	var resp extractResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", err
	}
	for _, page := range resp.Query.Pages {
		if page.Missing != nil {
			return "", fmt.Errorf("article %q does not exist", title)
		}
		return page.Extract, nil
	}
	return "", fmt.Errorf("no page in response for %q", title)
}

func (c *Client) categoryMembers(ctx context.Context, category string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("list", "categorymembers")
	params.Set("cmtitle", category)
	params.Set("cmnamespace", "0")
	params.Set("cmlimit", "500")

	var titles []string
	for {
		var resp categoryResponse
		if err := c.get(ctx, params, &resp); err != nil {
			return nil, err
		}
		for _, member := range resp.Query.CategoryMembers {
			titles = append(titles, member.Title)
		}
		if resp.Continue.CmContinue == "" || (limit > 0 && len(titles) >= limit) {
			break
		}
		params.Set("cmcontinue", resp.Continue.CmContinue)
	}
	return capTitles(titles, limit), nil
}

func (c *Client) pageLinks(ctx context.Context, title string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "links")
	params.Set("plnamespace", "0")
	params.Set("pllimit", "500")
	params.Set("titles", title)

	var titles []string
	for {
		var resp linksResponse
		if err := c.get(ctx, params, &resp); err != nil {
			return nil, err
		}
		for _, page := range resp.Query.Pages {
			for _, link := range page.Links {
				titles = append(titles, link.Title)
			}
		}
		if resp.Continue.PlContinue == "" || (limit > 0 && len(titles) >= limit) {
			break
		}
		params.Set("plcontinue", resp.Continue.PlContinue)
	}
	return capTitles(titles, limit), nil
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// pause sleeps the configured fetch delay, returning early on cancellation.
func (c *Client) pause(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(c.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func capTitles(titles []string, limit int) []string {
	if limit > 0 && len(titles) > limit {
		titles = titles[:limit]
	}
	return titles
}
