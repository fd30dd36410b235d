package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/nikavisa/visaflow/internal/classify"
	"github.com/nikavisa/visaflow/internal/model"
	"github.com/nikavisa/visaflow/internal/segment"
)

// BlockClassifier is the classification seam used by adapters
type BlockClassifier interface {
	Classify(ctx context.Context, block model.RawBlock, source string) classify.Result
}

// TextAdapter handles plain-text knowledge files: segment the text,
// classify each block, collect the survivors
type TextAdapter struct {
	classifier BlockClassifier
	segOpts    segment.Options
	verbose    bool
}

// NewTextAdapter creates the plain-text adapter
func NewTextAdapter(classifier BlockClassifier, segOpts segment.Options, verbose bool) *TextAdapter {
	return &TextAdapter{
		classifier: classifier,
		segOpts:    segOpts,
		verbose:    verbose,
	}
}

// Name returns the adapter name
func (a *TextAdapter) Name() string {
	return "text"
}

// CanHandle accepts text-extension files that are not link lists
func (a *TextAdapter) CanHandle(filename string, data []byte) bool {
	return hasTextExtension(filename) && !isLinkList(data)
}

// Extract segments the file and classifies each block. Classification
// failures skip the block, never the file. The whole document is
// segmented; the block cap and word slicing bound classification cost,
// not an up-front character cut.
func (a *TextAdapter) Extract(ctx context.Context, filename string, data []byte) ([]model.ContentItem, error) {
	blocks := segment.Split(string(data), a.segOpts)
	if a.verbose {
		fmt.Fprintf(os.Stderr, "  %s: %d blocks\n", filename, len(blocks))
	}

	var items []model.ContentItem
	for i, block := range blocks {
		res := a.classifier.Classify(ctx, block, filename)
		if res.Status != classify.StatusOK {
			fmt.Fprintf(os.Stderr, "  skip block %d/%d of %s: %v\n", i+1, len(blocks), filename, res.Err)
			continue
		}
		items = append(items, res.Item)
	}

	return items, nil
}
