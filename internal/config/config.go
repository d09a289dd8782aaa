package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"UptrendScanner/internal/collector"
	"UptrendScanner/internal/model"
)

// Data source providers.
const (
	ProviderYahoo    = "yahoo"
	ProviderVsTrader = "vstrader"
)

// Config holds all application configuration.
type Config struct {
	Universe model.Universe `yaml:"universe"`
	Scan     struct {
		// Categories is the selection; nil means DefaultCategories, empty means none.
		Categories  []string `yaml:"categories"`
		MinScore    int      `yaml:"min_score"`
		UptrendOnly bool     `yaml:"uptrend_only"`
		Concurrency int      `yaml:"concurrency"`
		DemoMode    bool     `yaml:"demo_mode"`
		Period      string   `yaml:"period"`
	} `yaml:"scan"`
	DataSource struct {
		Provider string `yaml:"provider"`
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"data_source"`
	Cache struct {
		SQLitePath string        `yaml:"sqlite_path"`
		TTL        time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Fields whose zero value is meaningful get their defaults before parsing.
	cfg.Scan.MinScore = 60
	cfg.Scan.UptrendOnly = true
	cfg.HTTP.Addr = ":8080"

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
		cfg.Telegram.Enabled = true
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("VSTRADER_BASE_URL"); v != "" {
		cfg.DataSource.Provider = ProviderVsTrader
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("VSTRADER_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("DEMO_MODE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("DEMO_MODE: %w", err)
		}
		cfg.Scan.DemoMode = b
	}
	if v, ok := os.LookupEnv("SCAN_CATEGORIES"); ok {
		cfg.Scan.Categories = SplitList(v)
	}
	if v := os.Getenv("MIN_SCORE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MIN_SCORE: %w", err)
		}
		cfg.Scan.MinScore = n
	}
	if v, ok := os.LookupEnv("HTTP_ADDR"); ok {
		cfg.HTTP.Addr = v
	}

	// Defaults
	if len(cfg.Universe) == 0 {
		cfg.Universe = DefaultUniverse()
	}
	for i := range cfg.Universe {
		if cfg.Universe[i].Label == "" {
			cfg.Universe[i].Label = cfg.Universe[i].Key
		}
	}
	if cfg.Scan.Categories == nil {
		cfg.Scan.Categories = append([]string(nil), DefaultCategories...)
	}
	if cfg.Scan.Concurrency == 0 {
		cfg.Scan.Concurrency = 10
	}
	if cfg.Scan.Period == "" {
		cfg.Scan.Period = string(collector.DefaultPeriod)
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderYahoo
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 6 * time.Hour
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 22 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all fields are consistent.
func (c *Config) Validate() error {
	if c.Scan.MinScore < 0 || c.Scan.MinScore > 100 {
		return fmt.Errorf("scan.min_score must be in [0,100], got %d", c.Scan.MinScore)
	}
	if c.Scan.Concurrency < 1 {
		return fmt.Errorf("scan.concurrency must be at least 1")
	}
	if _, err := collector.ParsePeriod(c.Scan.Period); err != nil {
		return fmt.Errorf("scan.period: %w", err)
	}

	seen := make(map[string]bool, len(c.Universe))
	for i, cat := range c.Universe {
		if cat.Key == "" {
			return fmt.Errorf("universe[%d]: key is required", i)
		}
		if seen[cat.Key] {
			return fmt.Errorf("universe: duplicate key %q", cat.Key)
		}
		seen[cat.Key] = true
	}
	for _, k := range c.Scan.Categories {
		if !seen[k] {
			return fmt.Errorf("scan.categories: unknown category %q", k)
		}
	}

	switch c.DataSource.Provider {
	case ProviderYahoo:
	case ProviderVsTrader:
		if c.DataSource.BaseURL == "" {
			return fmt.Errorf("data_source.base_url is required for vstrader")
		}
	default:
		return fmt.Errorf("data_source.provider: unknown provider %q", c.DataSource.Provider)
	}

	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required")
		}
	}
	return nil
}

// SplitList parses a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
