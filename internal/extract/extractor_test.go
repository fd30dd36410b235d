package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikavisa/visaflow/internal/classify"
	"github.com/nikavisa/visaflow/internal/fetch"
	"github.com/nikavisa/visaflow/internal/llm"
	"github.com/nikavisa/visaflow/internal/model"
	"github.com/nikavisa/visaflow/internal/segment"
)

// scriptedClassifier returns one scripted result per call
type scriptedClassifier struct {
	results []classify.Result
	calls   int
	sources []string
}

func (s *scriptedClassifier) Classify(ctx context.Context, block model.RawBlock, source string) classify.Result {
	s.sources = append(s.sources, source)
	if s.calls >= len(s.results) {
		return classify.Result{Status: classify.StatusParseFailure, Err: fmt.Errorf("unscripted call")}
	}
	res := s.results[s.calls]
	s.calls++
	if res.Status == classify.StatusOK {
		res.Item.Source = source
	}
	return res
}

func okResult(title string, category model.Category) classify.Result {
	return classify.Result{
		Status: classify.StatusOK,
		Item:   model.ContentItem{Category: category, Title: title, Content: "summary", Confidence: 0.8},
	}
}

type fakeFetcher struct {
	pages map[string]*fetch.Page
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (*fetch.Page, error) {
	page, ok := f.pages[rawURL]
	if !ok {
		return nil, fmt.Errorf("unreachable: %s", rawURL)
	}
	return page, nil
}

type echoProvider struct{ fail bool }

func (p *echoProvider) Name() string { return "echo" }

func (p *echoProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.fail {
		return nil, fmt.Errorf("provider down")
	}
	return &llm.CompletionResponse{Text: "خلاصه فشرده"}, nil
}

func (p *echoProvider) IsAvailable(ctx context.Context) bool { return !p.fail }

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newTestRegistry(classifier BlockClassifier, fetcher PageFetcher, provider llm.Provider) *Registry {
	registry := NewRegistry(NewTextAdapter(classifier, segment.DefaultOptions(), false))
	registry.Register(NewLinkListAdapter(fetcher, provider, 2000, false))
	return registry
}

func TestExtractDir_TextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Startup_Guide.txt", "### NL Startup Visa\n"+strings.Repeat("founder visa rules and details ", 4))
	writeFile(t, dir, "notes.bin", "binary-ish payload")

	classifier := &scriptedClassifier{results: []classify.Result{
		okResult("NL Startup", model.CategoryStartupVisa),
	}}

	e := NewExtractor(newTestRegistry(classifier, &fakeFetcher{}, &echoProvider{}), false)
	items, err := e.ExtractDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	// notes.bin has no adapter and is skipped, not fatal
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Source != "Startup_Guide.txt" {
		t.Errorf("unexpected source: %q", items[0].Source)
	}
}

// echoClassifier accepts every block, echoing its title
type echoClassifier struct{ calls int }

func (c *echoClassifier) Classify(ctx context.Context, block model.RawBlock, source string) classify.Result {
	c.calls++
	return classify.Result{
		Status: classify.StatusOK,
		Item: model.ContentItem{
			Source:     source,
			Category:   model.CategoryGeneral,
			Title:      block.Title,
			Content:    "summary",
			Confidence: 0.9,
		},
	}
}

func TestTextAdapter_SegmentsWholeDocument(t *testing.T) {
	// 10 sections of ~600 chars each; nothing past the first ~2000
	// chars may be lost.
	var doc strings.Builder
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&doc, "### Section %d\n%s\n", i,
			strings.Repeat("visa application processing details ", 17))
	}

	classifier := &echoClassifier{}
	adapter := NewTextAdapter(classifier, segment.DefaultOptions(), false)

	items, err := adapter.Extract(context.Background(), "big_guide.txt", []byte(doc.String()))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if len(items) != 10 {
		t.Fatalf("expected all 10 sections extracted, got %d", len(items))
	}
	if items[0].Title != "Section 1" || items[9].Title != "Section 10" {
		t.Errorf("section order lost: first %q last %q", items[0].Title, items[9].Title)
	}
}

func TestExtractDir_ClassificationFailureSkipsBlockOnly(t *testing.T) {
	dir := t.TempDir()
	text := "### Block One\n" + strings.Repeat("student visa requirements info ", 4) +
		"\n### Block Two\n" + strings.Repeat("work permit processing times ", 4)
	writeFile(t, dir, "mixed.md", text)

	classifier := &scriptedClassifier{results: []classify.Result{
		{Status: classify.StatusParseFailure, Err: fmt.Errorf("not json")},
		okResult("Work Permit", model.CategoryWorkPermit),
	}}

	e := NewExtractor(newTestRegistry(classifier, &fakeFetcher{}, &echoProvider{}), false)
	items, err := e.ExtractDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected bad block dropped, good block kept; got %d items", len(items))
	}
	if items[0].Title != "Work Permit" {
		t.Errorf("unexpected survivor: %q", items[0].Title)
	}
}

func TestExtractDir_LinkList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "auto_links.txt",
		"https://example.com/a\nnot a url line\nhttps://example.com/dead\n")

	fetcher := &fakeFetcher{pages: map[string]*fetch.Page{
		"https://example.com/a": {
			FinalURL: "https://example.com/a",
			Title:    strings.Repeat("Long Title ", 20),
			Text:     "Paragraph text about visas.",
		},
	}}

	e := NewExtractor(newTestRegistry(&scriptedClassifier{}, fetcher, &echoProvider{}), false)
	items, err := e.ExtractDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	// Dead link skipped, live link kept
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	item := items[0]
	if item.Category != model.CategoryExternalLink {
		t.Errorf("expected external_link, got %s", item.Category)
	}
	if len([]rune(item.Title)) > 80 {
		t.Errorf("expected title truncated to 80 runes, got %d", len([]rune(item.Title)))
	}
	if item.Content != "خلاصه فشرده" {
		t.Errorf("expected LLM summary, got %q", item.Content)
	}
	if item.Source != "https://example.com/a" {
		t.Errorf("expected link as source, got %q", item.Source)
	}
}

func TestLinkList_SummaryFallsBackToPageText(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]*fetch.Page{
		"https://example.com/a": {Title: "T", Text: "raw page text"},
	}}
	adapter := NewLinkListAdapter(fetcher, &echoProvider{fail: true}, 2000, false)

	items, err := adapter.Extract(context.Background(), "links.txt", []byte("https://example.com/a\n"))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len(items) != 1 || items[0].Content != "raw page text" {
		t.Errorf("expected raw-text fallback, got %+v", items)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 2000); got != "short" {
		t.Errorf("expected unchanged text, got %q", got)
	}

	long := strings.Repeat("آ", 2500)
	got := Truncate(long, 2000)
	if runes := []rune(got); len(runes) != 2001 || runes[len(runes)-1] != '…' {
		t.Errorf("expected 2000 runes plus marker, got %d runes", len([]rune(got)))
	}
}

func TestRegistry_LinkListBeatsText(t *testing.T) {
	registry := newTestRegistry(&scriptedClassifier{}, &fakeFetcher{}, &echoProvider{})

	if a := registry.Find("links.txt", []byte("https://example.com\n")); a == nil || a.Name() != "linklist" {
		t.Errorf("expected linklist adapter for URL file")
	}
	if a := registry.Find("guide.txt", []byte("### Heading\nbody")); a == nil || a.Name() != "text" {
		t.Errorf("expected text adapter for prose file")
	}
	if a := registry.Find("photo.jpg", []byte{0xFF, 0xD8}); a != nil {
		t.Errorf("expected no adapter for unknown format, got %s", a.Name())
	}
}
