package cli

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nikavisa/visaflow/internal/classify"
	"github.com/nikavisa/visaflow/internal/extract"
	"github.com/nikavisa/visaflow/internal/feeds"
	"github.com/nikavisa/visaflow/internal/fetch"
	"github.com/nikavisa/visaflow/internal/llm"
	"github.com/nikavisa/visaflow/internal/model"
	"github.com/nikavisa/visaflow/internal/pipeline"
	"github.com/nikavisa/visaflow/internal/rewrite"
	"github.com/nikavisa/visaflow/internal/segment"
	"github.com/nikavisa/visaflow/internal/telegram"
)

// loadConfig builds the runtime configuration: defaults, overlaid by
// the config file, then environment. Secrets come from env only.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if file := viper.ConfigFileUsed(); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Output.Verbose = verbose || viper.GetBool("verbose")

	if channel := viper.GetString("channel"); channel != "" {
		cfg.Telegram.Channel = channel
	}
	cfg.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")

	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	if err := cfg.Plan.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newProvider constructs the LLM provider, failing fast on a missing
// API key so runs never start half-configured
func newProvider(cfg *model.Config) (llm.Provider, error) {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	}
	return llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
}

// newExtractor wires the adapter registry behind one extractor
func newExtractor(cfg *model.Config, provider llm.Provider) *extract.Extractor {
	classifier := classify.New(provider, cfg.LLM.ClassifyTimeout)
	fetcher := fetch.New(cfg.Fetch)

	segOpts := segment.Options{
		MaxWords:     cfg.Segment.MaxWords,
		MinBodyChars: cfg.Segment.MinBodyChars,
		MaxBlocks:    cfg.Segment.MaxBlocks,
	}

	registry := extract.NewRegistry(
		extract.NewTextAdapter(classifier, segOpts, cfg.Output.Verbose))
	registry.Register(
		extract.NewLinkListAdapter(fetcher, provider, cfg.Extract.TruncateChars, cfg.Output.Verbose))

	return extract.NewExtractor(registry, cfg.Output.Verbose)
}

func newHarvester(cfg *model.Config) *feeds.Harvester {
	return feeds.New(cfg.Feeds, cfg.Fetch, cfg.Extract.KnowledgeDir, cfg.Output.Verbose)
}

// newPipeline builds the full pipeline including the delivery client.
// Commands that never deliver use the lighter constructors above.
func newPipeline(cfg *model.Config) (*pipeline.Pipeline, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	bot, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.Channel)
	if err != nil {
		return nil, err
	}

	rewriter := rewrite.New(provider, cfg.Post.Footers, cfg.Output.Verbose)
	return pipeline.New(cfg, newExtractor(cfg, provider), newHarvester(cfg), rewriter, bot), nil
}
