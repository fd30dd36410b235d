// Package fetch retrieves web pages for link-list extraction, with
// robots.txt compliance, per-domain rate limiting and a layered cache.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nikavisa/visaflow/internal/cache"
	"github.com/nikavisa/visaflow/internal/model"
	"github.com/nikavisa/visaflow/internal/worker"
	"golang.org/x/net/html"
)

// Page is the rendered result of fetching one URL
type Page struct {
	FinalURL string `json:"final_url"`
	Title    string `json:"title"`
	Text     string `json:"text"` // joined paragraph text
}

// Fetcher fetches and renders web pages
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *RobotsChecker
	limiter    *worker.Limiter
	pages      cache.Cache // nil when caching is disabled
}

// New creates a Fetcher from configuration
func New(cfg model.FetchConfig) *Fetcher {
	var pages cache.Cache
	if cfg.CacheEnabled {
		pages = cache.NewLayeredCache(cfg.CacheTTL, cfg.CacheDir, cfg.CacheTTL)
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		robots:    NewRobotsChecker(cfg.UserAgent, cfg.Timeout),
		limiter:   worker.NewLimiter(cfg.RatePerSec, cfg.Burst),
		pages:     pages,
	}
}

// Fetch retrieves a page, honoring robots.txt and the per-domain rate
// limit, and returns its title and paragraph text
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	key := cache.Key(rawURL)
	if f.pages != nil {
		if data, found := f.pages.Get(key); found {
			var page Page
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("robots.txt disallows %s", rawURL)
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	page, err := f.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if f.pages != nil {
		if data, err := json.Marshal(page); err == nil {
			_ = f.pages.Set(key, data, 0) // default TTL
		}
	}

	return page, nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	title, text, err := renderHTML(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &Page{
		FinalURL: resp.Request.URL.String(),
		Title:    title,
		Text:     text,
	}, nil
}

// renderHTML extracts the document title and the text of all <p>
// elements, skipping script/style content
func renderHTML(htmlContent string) (string, string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", "", err
	}

	var title string
	var paragraphs []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "title":
				if title == "" {
					title = strings.TrimSpace(nodeText(n))
				}
			case "p":
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					paragraphs = append(paragraphs, text)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return title, strings.Join(paragraphs, "\n\n"), nil
}

// nodeText collects all text nodes under n
func nodeText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return buf.String()
}
