package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nikavisa/visaflow/internal/fetch"
	"github.com/nikavisa/visaflow/internal/llm"
	"github.com/nikavisa/visaflow/internal/model"
)

const maxLinkTitleRunes = 80

// PageFetcher is the web-page seam used by the link-list adapter
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Page, error)
}

// LinkListAdapter handles text files whose lines are URLs: each link
// is fetched, its paragraph text compressed by the LLM, and turned
// into one external_link item
type LinkListAdapter struct {
	fetcher       PageFetcher
	provider      llm.Provider
	truncateChars int
	verbose       bool
}

// NewLinkListAdapter creates the link-list adapter
func NewLinkListAdapter(fetcher PageFetcher, provider llm.Provider, truncateChars int, verbose bool) *LinkListAdapter {
	return &LinkListAdapter{
		fetcher:       fetcher,
		provider:      provider,
		truncateChars: truncateChars,
		verbose:       verbose,
	}
}

// Name returns the adapter name
func (a *LinkListAdapter) Name() string {
	return "linklist"
}

// CanHandle accepts text files containing URL lines
func (a *LinkListAdapter) CanHandle(filename string, data []byte) bool {
	return hasTextExtension(filename) && isLinkList(data)
}

// Extract fetches each link and produces one item per reachable page.
// A failed link is logged and skipped, never aborting the rest.
func (a *LinkListAdapter) Extract(ctx context.Context, filename string, data []byte) ([]model.ContentItem, error) {
	var items []model.ContentItem

	for _, link := range Links(data) {
		page, err := a.fetcher.Fetch(ctx, link)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  skip link %s: %v\n", link, err)
			continue
		}

		text := Truncate(page.Text, a.truncateChars)
		summary := a.summarize(ctx, page.Title, text)

		title := page.Title
		if title == "" {
			title = link
		}

		items = append(items, model.ContentItem{
			Source:     link,
			Category:   model.CategoryExternalLink,
			Title:      truncateRunes(title, maxLinkTitleRunes),
			Content:    summary,
			Confidence: 0.5,
		})

		if a.verbose {
			fmt.Fprintf(os.Stderr, "  link %s → %q\n", link, page.Title)
		}
	}

	return items, nil
}

// summarize asks the LLM for a compressed summary, falling back to the
// raw truncated text when the call fails
func (a *LinkListAdapter) summarize(ctx context.Context, title, text string) string {
	prompt := fmt.Sprintf(`متن زیر از یک صفحه خبری درباره مهاجرت یا تحصیل است. آن را در حداکثر سه جمله فارسی خلاصه کن.

عنوان: %s
متن: %s`, title, text)

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{Prompt: prompt})
	if err != nil || resp.Text == "" {
		return text
	}
	return resp.Text
}

// isLinkList reports whether the content has at least one line starting
// with a URL scheme
func isLinkList(data []byte) bool {
	return len(Links(data)) > 0
}

// Links returns the URL lines of a link-list file
func Links(data []byte) []string {
	var links []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			links = append(links, line)
		}
	}
	return links
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
