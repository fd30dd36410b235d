// Package segment splits raw document text into bounded blocks that
// are small enough to classify one at a time.
package segment

import (
	"fmt"
	"strings"

	"github.com/nikavisa/visaflow/internal/model"
)

const headingPrefix = "### "

// Options bound the segmentation output
type Options struct {
	MaxWords     int // max words per block body
	MinBodyChars int // bodies shorter than this are dropped as noise
	MaxBlocks    int // hard cap on blocks per document
}

// DefaultOptions matches the store's historical artifacts
func DefaultOptions() Options {
	return Options{
		MaxWords:     120,
		MinBodyChars: 40,
		MaxBlocks:    30,
	}
}

// Split segments text into blocks. The primary strategy splits on
// "### " heading markers; each section's first line becomes the block
// title and the remainder the body. Oversized bodies are re-sliced by
// word count into numbered parts. If no usable heading sections exist,
// the whole input is sliced by word count instead.
func Split(text string, opts Options) []model.RawBlock {
	if opts.MaxWords <= 0 {
		opts.MaxWords = DefaultOptions().MaxWords
	}
	if opts.MinBodyChars <= 0 {
		opts.MinBodyChars = DefaultOptions().MinBodyChars
	}
	if opts.MaxBlocks <= 0 {
		opts.MaxBlocks = DefaultOptions().MaxBlocks
	}

	blocks := splitByHeadings(text, opts)
	if len(blocks) == 0 {
		blocks = sliceByWords("", text, opts.MaxWords)
	}

	if len(blocks) > opts.MaxBlocks {
		blocks = blocks[:opts.MaxBlocks]
	}
	return blocks
}

func splitByHeadings(text string, opts Options) []model.RawBlock {
	var blocks []model.RawBlock

	for _, section := range splitSections(text) {
		lines := strings.SplitN(section, "\n", 2)
		title := strings.TrimSpace(lines[0])
		body := ""
		if len(lines) > 1 {
			body = strings.TrimSpace(lines[1])
		}

		// too small → noise
		if len(body) < opts.MinBodyChars {
			continue
		}

		words := strings.Fields(body)
		if len(words) > opts.MaxWords {
			for i, part := range sliceWords(words, opts.MaxWords) {
				blocks = append(blocks, model.RawBlock{
					Title:     fmt.Sprintf("%s (Part %d)", title, i+1),
					Body:      part,
					WordCount: wordCount(part),
				})
			}
			continue
		}

		blocks = append(blocks, model.RawBlock{
			Title:     title,
			Body:      body,
			WordCount: len(words),
		})
	}

	return blocks
}

// splitSections splits on heading markers at line starts, discarding
// any empty leading section
func splitSections(text string) []string {
	var sections []string
	for _, part := range strings.Split("\n"+text, "\n"+headingPrefix) {
		part = strings.TrimSpace(part)
		if part != "" {
			sections = append(sections, part)
		}
	}
	return sections
}

// sliceByWords is the fallback for documents without usable headings:
// pure fixed-size word slices, no sentence awareness
func sliceByWords(title, text string, maxWords int) []model.RawBlock {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var blocks []model.RawBlock
	for _, part := range sliceWords(words, maxWords) {
		blocks = append(blocks, model.RawBlock{
			Title:     title,
			Body:      part,
			WordCount: wordCount(part),
		})
	}
	return blocks
}

func sliceWords(words []string, maxWords int) []string {
	var parts []string
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		parts = append(parts, strings.Join(words[i:end], " "))
	}
	return parts
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
