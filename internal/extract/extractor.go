// Package extract turns heterogeneous source material into classified
// content items, one file at a time.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nikavisa/visaflow/internal/model"
)

// Extractor walks a knowledge directory and dispatches each file to a
// format adapter
type Extractor struct {
	registry *Registry
	verbose  bool
}

// NewExtractor creates an extractor over the given adapter registry
func NewExtractor(registry *Registry, verbose bool) *Extractor {
	return &Extractor{
		registry: registry,
		verbose:  verbose,
	}
}

// ExtractDir processes every file in dir in sorted order. A failing
// file is logged and skipped; only an unreadable directory is an error.
func (e *Extractor) ExtractDir(ctx context.Context, dir string) ([]model.ContentItem, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read knowledge dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var items []model.ContentItem
	for _, name := range names {
		extracted, err := e.extractFile(ctx, dir, name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skip %s: %v\n", name, err)
			continue
		}
		items = append(items, extracted...)
	}

	return items, nil
}

func (e *Extractor) extractFile(ctx context.Context, dir, name string) ([]model.ContentItem, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	adapter := e.registry.Find(name, data)
	if adapter == nil {
		return nil, fmt.Errorf("no extractor for file type")
	}

	if e.verbose {
		fmt.Fprintf(os.Stderr, "processing %s (%s)\n", name, adapter.Name())
	}

	items, err := adapter.Extract(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", adapter.Name(), err)
	}
	return items, nil
}

// Truncate caps raw text at max characters, appending a continuation
// marker, so downstream payloads stay bounded
func Truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
