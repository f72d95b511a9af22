package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for modelfetch.
type Config struct {
	DataDir   string       `mapstructure:"data_dir"`
	CacheDir  string       `mapstructure:"cache_dir"`
	CacheTTL  string       `mapstructure:"cache_ttl"`
	NoCache   bool         `mapstructure:"no_cache"`
	Timeout   string       `mapstructure:"timeout"`
	RateLimit float64      `mapstructure:"rate_limit"`
	Providers []string     `mapstructure:"providers"`
	LogLevel  string       `mapstructure:"log_level"`
	GitHub    GitHubConfig `mapstructure:"github"`

	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	Google     ProviderConfig `mapstructure:"google"`
}

// ProviderConfig holds per-vendor settings.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// GitHubConfig holds settings for the publish command.
type GitHubConfig struct {
	Token      string `mapstructure:"token"`
	Owner      string `mapstructure:"owner"`
	Repo       string `mapstructure:"repo"`
	RepoPath   string `mapstructure:"repo_path"`
	BaseBranch string `mapstructure:"base_branch"`
}

// ProviderSettings returns the (api key, base URL) pair for a provider
// name, empty for unknown providers.
func (c *Config) ProviderSettings(name string) (string, string) {
	switch name {
	case "openrouter":
		return c.OpenRouter.APIKey, c.OpenRouter.BaseURL
	case "openai":
		return c.OpenAI.APIKey, c.OpenAI.BaseURL
	case "anthropic":
		return c.Anthropic.APIKey, c.Anthropic.BaseURL
	case "google":
		return c.Google.APIKey, c.Google.BaseURL
	default:
		return "", ""
	}
}

// HTTPTimeout parses the configured timeout, falling back to 30s.
func (c *Config) HTTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Load reads configuration from file, environment, and defaults.
// API keys and base URL overrides follow the {PROVIDER}_API_KEY and
// {PROVIDER}_BASE_URL environment conventions.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("data_dir", "data")
	v.SetDefault("cache_dir", defaultCacheDir())
	v.SetDefault("cache_ttl", "1h")
	v.SetDefault("no_cache", false)
	v.SetDefault("timeout", "30s")
	v.SetDefault("rate_limit", 10.0)
	v.SetDefault("providers", []string{"openrouter"})
	v.SetDefault("log_level", "info")
	v.SetDefault("github.base_branch", "main")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/modelfetch")
	}

	// Environment variables
	v.SetEnvPrefix("MODELFETCH")
	v.AutomaticEnv()

	_ = v.BindEnv("data_dir", "MODELFETCH_DATA_DIR")
	_ = v.BindEnv("timeout", "MODELFETCH_TIMEOUT")
	_ = v.BindEnv("log_level", "MODELFETCH_LOG_LEVEL")
	_ = v.BindEnv("github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	_ = v.BindEnv("openrouter.base_url", "OPENROUTER_BASE_URL")
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	_ = v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("anthropic.base_url", "ANTHROPIC_BASE_URL")
	_ = v.BindEnv("google.api_key", "GOOGLE_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("google.base_url", "GOOGLE_BASE_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Resolve data dir to absolute
	if !filepath.IsAbs(cfg.DataDir) {
		abs, err := filepath.Abs(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("resolving data dir: %w", err)
		}
		cfg.DataDir = abs
	}

	return &cfg, nil
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/modelfetch-cache"
	}
	return filepath.Join(home, ".cache", "modelfetch")
}
