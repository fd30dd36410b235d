// Package feeds harvests article links from RSS/Atom feeds into the
// knowledge directory, where the link-list extractor picks them up.
package feeds

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/nikavisa/visaflow/internal/model"
	"github.com/nikavisa/visaflow/internal/worker"
)

// Harvester polls configured feeds and appends previously unseen
// article links to the links file. Feed fetches and link probes share
// a per-domain rate limit so a feed full of same-host links cannot
// hammer that host.
type Harvester struct {
	feeds     []string
	linksPath string
	workers   int
	client    *http.Client
	limiter   *worker.Limiter
	verbose   bool
}

// New creates a harvester. The links file lives under the knowledge
// directory so ingestion finds it without extra configuration.
func New(cfg model.FeedsConfig, fetchCfg model.FetchConfig, knowledgeDir string, verbose bool) *Harvester {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Harvester{
		feeds:     cfg.URLs,
		linksPath: filepath.Join(knowledgeDir, cfg.LinksFile),
		workers:   workers,
		client: &http.Client{
			Timeout: fetchCfg.Timeout,
			Transport: &userAgentTransport{
				base:      http.DefaultTransport,
				userAgent: fetchCfg.UserAgent,
			},
		},
		limiter: worker.NewLimiter(fetchCfg.RatePerSec, fetchCfg.Burst),
		verbose: verbose,
	}
}

// userAgentTransport injects a User-Agent header into every request
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// Harvest polls every feed concurrently, probes the discovered links,
// and appends the new ones to the links file. Returns the number of
// links added. A failing feed is logged and skipped.
func (h *Harvester) Harvest(ctx context.Context) (int, error) {
	links := h.collectLinks()
	if len(links) == 0 {
		return 0, nil
	}

	existing, err := h.loadExisting()
	if err != nil {
		return 0, err
	}

	var fresh []string
	for _, link := range links {
		if existing[link] {
			continue
		}
		if !h.alive(ctx, link) {
			if h.verbose {
				fmt.Fprintf(os.Stderr, "  dead link %s\n", link)
			}
			continue
		}
		fresh = append(fresh, link)
		existing[link] = true
	}

	if len(fresh) == 0 {
		return 0, nil
	}

	if err := h.appendLinks(fresh); err != nil {
		return 0, err
	}
	return len(fresh), nil
}

// feedJob fetches one feed inside the worker pool
type feedJob struct {
	harvester *Harvester
	url       string
}

type feedResult struct {
	url   string
	links []string
	err   error
}

func (r *feedResult) GetError() error { return r.err }

func (j *feedJob) Execute(ctx context.Context) worker.Result {
	links, err := j.harvester.fetchFeed(ctx, j.url)
	return &feedResult{url: j.url, links: links, err: err}
}

// collectLinks fetches all feeds through the worker pool and returns
// the deduplicated item links in sorted order
func (h *Harvester) collectLinks() []string {
	pool := worker.NewPool(h.workers)
	pool.Start()

	for _, feedURL := range h.feeds {
		pool.Submit(&feedJob{harvester: h, url: feedURL})
	}

	seen := make(map[string]bool)
	var links []string
	for _, res := range pool.Wait() {
		r := res.(*feedResult)
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "feed %s: %v\n", r.url, r.err)
			continue
		}
		for _, link := range r.links {
			if !seen[link] {
				seen[link] = true
				links = append(links, link)
			}
		}
	}

	sort.Strings(links)
	return links
}

func (h *Harvester) fetchFeed(ctx context.Context, feedURL string) ([]string, error) {
	if err := h.limiter.Wait(ctx, feedURL); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	fp := gofeed.NewParser()
	fp.Client = h.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var links []string
	for _, item := range feed.Items {
		if item.Link != "" {
			links = append(links, item.Link)
		}
	}

	if h.verbose {
		fmt.Fprintf(os.Stderr, "  feed %s: %d links\n", feedURL, len(links))
	}
	return links, nil
}

// alive probes the link with a HEAD request so obviously dead pages
// never enter the links file
func (h *Harvester) alive(ctx context.Context, link string) bool {
	if err := h.limiter.Wait(ctx, link); err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, link, nil)
	if err != nil {
		return false
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}

func (h *Harvester) loadExisting() (map[string]bool, error) {
	existing := make(map[string]bool)

	data, err := os.ReadFile(h.linksPath)
	if os.IsNotExist(err) {
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read links file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			existing[line] = true
		}
	}
	return existing, nil
}

func (h *Harvester) appendLinks(links []string) error {
	if err := os.MkdirAll(filepath.Dir(h.linksPath), 0755); err != nil {
		return fmt.Errorf("create knowledge dir: %w", err)
	}

	f, err := os.OpenFile(h.linksPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open links file: %w", err)
	}
	defer f.Close()

	for _, link := range links {
		if _, err := fmt.Fprintln(f, link); err != nil {
			return fmt.Errorf("write links file: %w", err)
		}
	}
	return nil
}
