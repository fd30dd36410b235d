// Package classify turns raw blocks into categorized content items via
// the text-understanding service.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nikavisa/visaflow/internal/llm"
	"github.com/nikavisa/visaflow/internal/model"
)

// Status distinguishes the ways a classification attempt can end, so
// callers make deliberate fallback decisions instead of catching
// everything
type Status int

const (
	// StatusOK means Item holds a usable classification
	StatusOK Status = iota

	// StatusParseFailure means the model answered but not with the
	// strict JSON object we asked for; the block should be skipped
	StatusParseFailure

	// StatusTransportFailure means the provider call itself failed
	StatusTransportFailure
)

// Result is the outcome of classifying a single block
type Result struct {
	Status Status
	Item   model.ContentItem
	Err    error // cause for non-OK statuses
}

// Classifier classifies raw blocks using an LLM provider
type Classifier struct {
	provider       llm.Provider
	timeoutSeconds int
}

// classification is the strict JSON object the model must return
type classification struct {
	Category   string  `json:"category"`
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Confidence float64 `json:"confidence"`
}

// New creates a classifier. timeoutSeconds bounds each provider call.
func New(provider llm.Provider, timeoutSeconds int) *Classifier {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 12
	}
	return &Classifier{
		provider:       provider,
		timeoutSeconds: timeoutSeconds,
	}
}

// Classify sends one block to the provider and parses the strict JSON
// reply. source is the originating filename or URL; a source containing
// "startup" forces the startup_visa category regardless of the model's
// answer.
func (c *Classifier) Classify(ctx context.Context, block model.RawBlock, source string) Result {
	prompt := buildPrompt(block)

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:         prompt,
		TimeoutSeconds: c.timeoutSeconds,
	})
	if err != nil {
		return Result{Status: StatusTransportFailure, Err: fmt.Errorf("classify %q: %w", block.Title, err)}
	}

	parsed, err := parseClassification(resp.Text)
	if err != nil {
		return Result{Status: StatusParseFailure, Err: fmt.Errorf("classify %q: %w", block.Title, err)}
	}

	category := model.Category(parsed.Category)
	if strings.Contains(strings.ToLower(source), "startup") {
		category = model.CategoryStartupVisa
	}

	title := parsed.Title
	if title == "" {
		title = "Untitled"
	}

	return Result{
		Status: StatusOK,
		Item: model.ContentItem{
			Source:     source,
			Category:   category,
			Title:      title,
			Content:    parsed.Summary,
			Confidence: parsed.Confidence,
		},
	}
}

// parseClassification decodes the model's reply. A JSON array is
// retried with its first element; anything else that is not a strict
// object with a known category is a parse failure.
func parseClassification(raw string) (*classification, error) {
	raw = strings.TrimSpace(raw)

	var parsed classification
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		if !strings.HasPrefix(raw, "[") {
			return nil, fmt.Errorf("not a JSON object: %w", err)
		}

		var list []classification
		if err := json.Unmarshal([]byte(raw), &list); err != nil || len(list) == 0 {
			return nil, fmt.Errorf("unusable JSON array")
		}
		parsed = list[0]
	}

	if parsed.Category == "" {
		return nil, fmt.Errorf("missing category field")
	}
	if !model.ValidClassifierCategory(parsed.Category) {
		return nil, fmt.Errorf("unknown category %q", parsed.Category)
	}

	return &parsed, nil
}

func buildPrompt(block model.RawBlock) string {
	categories := make([]string, len(model.ClassifierCategories))
	for i, c := range model.ClassifierCategories {
		categories[i] = fmt.Sprintf("%q", string(c))
	}

	return fmt.Sprintf(`You are an immigration content classifier.

Return STRICT JSON with keys:
{
  "category": "...",
  "title": "...",
  "summary": "...",
  "confidence": 0.0
}

RULES:
- NEVER return a list
- NEVER add explanation
- Title must reference ONE country or ONE topic only
- Category must be one of:
    %s

TEXT:
%s
%s`, strings.Join(categories, ", "), block.Title, block.Body)
}
