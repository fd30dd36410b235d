package model

import "time"

// Config is the full runtime configuration, constructed once at
// process start and passed into each component
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	LLM      LLMConfig      `yaml:"llm"`
	Segment  SegmentConfig  `yaml:"segment"`
	Extract  ExtractConfig  `yaml:"extract"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Post     PostConfig     `yaml:"post"`
	Plan     PostingPlan    `yaml:"plan"`
	Output   OutputConfig   `yaml:"output"`
}

// TelegramConfig configures the delivery channel
type TelegramConfig struct {
	Token   string `yaml:"-"`       // resolved from TELEGRAM_TOKEN, never persisted
	Channel string `yaml:"channel"` // @name or numeric chat id
}

// LLMConfig configures the text-understanding service
type LLMConfig struct {
	Provider        string `yaml:"provider"` // openai, anthropic, ollama
	Model           string `yaml:"model"`
	APIKey          string `yaml:"-"` // resolved from env, never persisted
	BaseURL         string `yaml:"base_url,omitempty"`
	Timeout         int    `yaml:"timeout"`          // seconds, rewrite calls
	ClassifyTimeout int    `yaml:"classify_timeout"` // seconds, bounds each classification call
	MaxTokens       int    `yaml:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// SegmentConfig bounds the segmentation step
type SegmentConfig struct {
	MaxWords     int `yaml:"max_words"`      // max words per block body
	MinBodyChars int `yaml:"min_body_chars"` // blocks under this are noise
	MaxBlocks    int `yaml:"max_blocks"`     // hard cap per document
}

// ExtractConfig configures source material handling
type ExtractConfig struct {
	KnowledgeDir  string `yaml:"knowledge_dir"`
	StorePath     string `yaml:"store_path"`
	PostedLogPath string `yaml:"posted_log_path"`
	TruncateChars int    `yaml:"truncate_chars"` // fetched page text cap before summarization
}

// FetchConfig configures the web page fetcher
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	RatePerSec   float64       `yaml:"rate_per_sec"` // per-domain
	Burst        int           `yaml:"burst"`
	CacheEnabled bool          `yaml:"cache_enabled"`
	CacheDir     string        `yaml:"cache_dir"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// FeedsConfig configures the RSS/Atom link harvester
type FeedsConfig struct {
	URLs      []string `yaml:"urls"`
	LinksFile string   `yaml:"links_file"` // under the knowledge dir
	Workers   int      `yaml:"workers"`
}

// PostConfig configures message composition
type PostConfig struct {
	// Footers rotate as the signature line appended to each post
	Footers      []string `yaml:"footers"`
	PollQuestion string   `yaml:"poll_question"`
	PollOptions  []string `yaml:"poll_options"`

	// Placeholder is sent when no eligible content exists
	Placeholder string `yaml:"placeholder"`
}

// OutputConfig controls operator-facing output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Channel: "@nikavisa",
		},
		LLM: LLMConfig{
			Provider:        "openai",
			Model:           "gpt-4o-mini",
			Timeout:         30,
			ClassifyTimeout: 12,
			MaxTokens:       1000,
		},
		Segment: SegmentConfig{
			MaxWords:     120,
			MinBodyChars: 40,
			MaxBlocks:    30,
		},
		Extract: ExtractConfig{
			KnowledgeDir:  "internal_knowledge",
			StorePath:     "internal_posts.json",
			PostedLogPath: "posted_log.json",
			TruncateChars: 2000,
		},
		Fetch: FetchConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Visaflow/0.1 (+https://github.com/nikavisa/visaflow)",
			MaxBodyBytes: 2_000_000,
			RatePerSec:   1,
			Burst:        2,
			CacheEnabled: true,
			CacheDir:     ".visaflow/cache",
			CacheTTL:     12 * time.Hour,
		},
		Feeds: FeedsConfig{
			URLs: []string{
				"https://www.schengenvisainfo.com/news/feed/",
				"https://www.study.eu/rss",
				"https://www.gov.uk/government/announcements.atom",
			},
			LinksFile: "auto_links.txt",
			Workers:   4,
		},
		Post: PostConfig{
			Footers: []string{
				"📞 برای اطلاعات بیشتر با نیکا ویزا تماس بگیرید: 09910777743",
				"🤖 اگر سوالی درباره مهاجرت دارید، از ربات هوش مصنوعی ما در @applypal_bot بپرسید",
				"📅 برای رزرو وقت مشاوره، به ادمین پیام دهید: @nikavisa_admin",
			},
			PollQuestion: "کدام موضوع مهاجرتی برای شما جذاب‌تر است؟",
			PollOptions: []string{
				"ویزای استارتاپ",
				"ویزای تحصیلی",
				"اجازه کار",
				"بورسیه",
			},
			Placeholder: "⚠️ امروز محتوای جدیدی برای انتشار موجود نیست. به زودی مطالب تازه اضافه می‌شود.",
		},
		Plan: DefaultPostingPlan(),
	}
}
