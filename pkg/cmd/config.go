package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

type appConfig struct {
	Storage StorageConfig `mapstructure:"storage"`
	Jobs    JobsConfig    `mapstructure:"jobs"`
	Embed   EmbedConfig   `mapstructure:"embed"`
	Crawl   CrawlConfig   `mapstructure:"crawl"`
}

// StorageConfig holds configuration for the SQLite hybrid document store.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// JobsConfig holds configuration for the job manager's worker pool.
type JobsConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// EmbedConfig holds configuration for the embedding-model client (§6).
type EmbedConfig struct {
	Spec      string `mapstructure:"spec"`
	Dimension int    `mapstructure:"dimension"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Region    string `mapstructure:"region"`
}

// CrawlConfig holds the default crawl options a scrape job falls back to
// when a flag isn't explicitly set (§6 CLI flag table).
type CrawlConfig struct {
	MaxPages       int    `mapstructure:"max_pages"`
	MaxDepth       int    `mapstructure:"max_depth"`
	MaxConcurrency int    `mapstructure:"max_concurrency"`
	Scope          string `mapstructure:"scope"`
	ScrapeMode     string `mapstructure:"scrape_mode"`
}

// loadConfig loads the application configuration from the specified file path and environment variables.
// It uses the provided args structure to determine the configuration path.
// The function returns a pointer to the appConfig structure and an error if something goes wrong.
func loadConfig(flags *cmdFlags) (*appConfig, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())

	if flags.ConfigPath != "" {
		v.SetConfigFile(flags.ConfigPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg appConfig

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyConfigDefaults(&cfg)

	slog.Debug("Config loaded", slog.Any("config", cfg))

	return &cfg, nil
}

func applyConfigDefaults(cfg *appConfig) {
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "docindex.db"
	}

	if cfg.Jobs.Concurrency <= 0 {
		cfg.Jobs.Concurrency = 3
	}

	if cfg.Embed.Spec == "" {
		cfg.Embed.Spec = "openai:text-embedding-3-small"
	}

	if cfg.Embed.Dimension <= 0 {
		cfg.Embed.Dimension = 1536
	}

	if cfg.Crawl.MaxPages <= 0 {
		cfg.Crawl.MaxPages = 100
	}

	if cfg.Crawl.MaxDepth <= 0 {
		cfg.Crawl.MaxDepth = 5
	}

	if cfg.Crawl.MaxConcurrency <= 0 {
		cfg.Crawl.MaxConcurrency = 5
	}

	if cfg.Crawl.Scope == "" {
		cfg.Crawl.Scope = "subpages"
	}

	if cfg.Crawl.ScrapeMode == "" {
		cfg.Crawl.ScrapeMode = "auto"
	}
}
