package extract

import (
	"context"
	"strings"

	"github.com/nikavisa/visaflow/internal/model"
)

// Adapter defines the interface for source-format extractors.
// Document, image and audio formats plug in here; the built-in
// adapters cover plain text and link lists.
type Adapter interface {
	// Name returns the adapter name
	Name() string

	// CanHandle checks if this adapter can handle the given file,
	// judging by its name and raw content
	CanHandle(filename string, data []byte) bool

	// Extract turns one source file into content items
	Extract(ctx context.Context, filename string, data []byte) ([]model.ContentItem, error)
}

// Registry manages format adapters
type Registry struct {
	adapters []Adapter
	fallback Adapter
}

// NewRegistry creates a registry with the given fallback adapter
func NewRegistry(fallback Adapter) *Registry {
	return &Registry{fallback: fallback}
}

// Register registers a new adapter. Adapters are consulted in
// registration order; first match wins.
func (r *Registry) Register(adapter Adapter) {
	r.adapters = append(r.adapters, adapter)
}

// Find returns the adapter for the given file, or nil when no adapter
// (including the fallback) can handle it
func (r *Registry) Find(filename string, data []byte) Adapter {
	for _, adapter := range r.adapters {
		if adapter.CanHandle(filename, data) {
			return adapter
		}
	}
	if r.fallback != nil && r.fallback.CanHandle(filename, data) {
		return r.fallback
	}
	return nil
}

// textExtensions are the formats readable as plain text
var textExtensions = []string{".txt", ".md", ".rtf"}

func hasTextExtension(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range textExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
