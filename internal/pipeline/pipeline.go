// Package pipeline orchestrates the daily run: ingest source
// material, harvest feed links, compose and deliver one post.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nikavisa/visaflow/internal/model"
	"github.com/nikavisa/visaflow/internal/rewrite"
	"github.com/nikavisa/visaflow/internal/selection"
	"github.com/nikavisa/visaflow/internal/store"
)

// DirExtractor turns a knowledge directory into content items
type DirExtractor interface {
	ExtractDir(ctx context.Context, dir string) ([]model.ContentItem, error)
}

// LinkHarvester pulls new article links into the knowledge directory
type LinkHarvester interface {
	Harvest(ctx context.Context) (int, error)
}

// ItemRewriter composes the channel copy for one item
type ItemRewriter interface {
	Rewrite(ctx context.Context, item *model.ContentItem, postedCount int) string
}

// Deliverer is the delivery channel seam
type Deliverer interface {
	SendMessage(ctx context.Context, text string) error
	SendPoll(ctx context.Context, question string, options []string) error
}

// Pipeline wires the components together. It owns both persisted
// collections for the duration of a run; no concurrent writers.
type Pipeline struct {
	cfg       *model.Config
	extractor DirExtractor
	harvester LinkHarvester
	rewriter  ItemRewriter
	deliverer Deliverer
}

// New creates a pipeline over already-constructed components
func New(cfg *model.Config, extractor DirExtractor, harvester LinkHarvester, rewriter ItemRewriter, deliverer Deliverer) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		extractor: extractor,
		harvester: harvester,
		rewriter:  rewriter,
		deliverer: deliverer,
	}
}

// Ingest extracts the knowledge directory and merges the result into
// the content store. Returns the number of items added. An empty dir
// argument uses the configured knowledge directory.
func (p *Pipeline) Ingest(ctx context.Context, dir string) (int, error) {
	if dir == "" {
		dir = p.cfg.Extract.KnowledgeDir
	}

	fresh, err := p.extractor.ExtractDir(ctx, dir)
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", dir, err)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	existing, err := store.LoadItems(p.cfg.Extract.StorePath)
	if err != nil {
		return 0, fmt.Errorf("load content store: %w", err)
	}

	merged := store.Merge(existing, fresh)
	if err := store.SaveItems(p.cfg.Extract.StorePath, merged); err != nil {
		return 0, fmt.Errorf("save content store: %w", err)
	}
	return len(fresh), nil
}

// HarvestLinks runs the feed harvester
func (p *Pipeline) HarvestLinks(ctx context.Context) (int, error) {
	return p.harvester.Harvest(ctx)
}

// PostOnce runs one scheduled delivery for the given time. The posted
// log is written only after the channel confirms delivery; every
// earlier exit leaves persisted state untouched.
func (p *Pipeline) PostOnce(ctx context.Context, now time.Time) error {
	slot, err := p.cfg.Plan.SlotFor(now)
	if err != nil {
		return err
	}

	if slot.Poll {
		if err := p.deliverer.SendPoll(ctx, p.cfg.Post.PollQuestion, p.cfg.Post.PollOptions); err != nil {
			return fmt.Errorf("deliver poll: %w", err)
		}
		if p.cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "poll delivered (%s)\n", slot.Weekday)
		}
		return nil
	}

	items, err := store.LoadItems(p.cfg.Extract.StorePath)
	if err != nil {
		return fmt.Errorf("load content store: %w", err)
	}
	log, err := store.LoadPosted(p.cfg.Extract.PostedLogPath)
	if err != nil {
		return fmt.Errorf("load posted log: %w", err)
	}

	candidate := selection.Select(items, log.Titles(), slot.Category)
	if candidate == nil {
		fmt.Fprintf(os.Stderr, "no unposted %s content, sending placeholder\n", slot.Category)
		if err := p.deliverer.SendMessage(ctx, p.cfg.Post.Placeholder); err != nil {
			return fmt.Errorf("deliver placeholder: %w", err)
		}
		return nil
	}

	text := p.rewriter.Rewrite(ctx, candidate, log.Len())
	text = rewrite.FormatHTML(text, candidate.Title)

	if err := p.deliverer.SendMessage(ctx, text); err != nil {
		return fmt.Errorf("deliver post: %w", err)
	}

	if err := log.Append(candidate.Title); err != nil {
		return fmt.Errorf("update posted log: %w", err)
	}

	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "posted %q (%s)\n", candidate.Title, slot.Category)
	}
	return nil
}

// Run executes the full daily sequence: ingest, harvest, post
func (p *Pipeline) Run(ctx context.Context, now time.Time) error {
	added, err := p.Ingest(ctx, "")
	if err != nil {
		return err
	}
	if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "ingested %d items\n", added)
	}

	harvested, err := p.HarvestLinks(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "harvest failed, continuing: %v\n", err)
	} else if p.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "harvested %d links\n", harvested)
	}

	return p.PostOnce(ctx, now)
}
