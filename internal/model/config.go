package model

import "time"

// Config is the full application configuration.
type Config struct {
	// DataDir is the directory holding post exports and keyword files.
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// Accounts maps an account identifier to its datasets and keyword file.
	Accounts map[string]AccountConfig `yaml:"accounts" mapstructure:"accounts"`

	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	LLM    LLMConfig    `yaml:"llm" mapstructure:"llm"`
}

// AccountConfig describes the flat-file inputs of one monitored account.
type AccountConfig struct {
	// Datasets is the ordered list of CSV export files, relative to DataDir.
	// Order matters: post ids and feed ordering follow it.
	Datasets []string `yaml:"datasets" mapstructure:"datasets"`

	// KeywordsFile is the optional keyword dictionary JSON, relative to
	// DataDir. Empty means the account has no dictionary.
	KeywordsFile string `yaml:"keywords_file" mapstructure:"keywords_file"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`

	// CacheTTL enables the per-account analytics snapshot cache when > 0.
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`

	// RateLimit is requests per second per client IP; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// OutputConfig holds CLI output settings.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional narrative summarizer. Disabled unless a
// provider is set.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:  "data",
		Accounts: map[string]AccountConfig{},
		Server: ServerConfig{
			Addr:      ":8080",
			CacheTTL:  0,
			RateLimit: 0,
			RateBurst: 5,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			MaxTokens: 1000,
			Timeout:   30,
		},
	}
}
