// Package config loads application configuration from an optional YAML file
// and environment variables. All variables use the ALEMAN_ prefix.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
)

// PathEnv names the variable holding the optional YAML config file.
const PathEnv = "ALEMAN_CONFIG_PATH"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Cache      CacheConfig      `yaml:"cache"`
	AI         AIConfig         `yaml:"ai"`
	Log        LogConfig        `yaml:"log"`
	Curriculum CurriculumConfig `yaml:"curriculum"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"ALEMAN_SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"ALEMAN_SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"ALEMAN_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"ALEMAN_SERVER_WRITE_TIMEOUT"    env-default:"90s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"ALEMAN_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL keeps
// submissions in memory.
type DatabaseConfig struct {
	URL      string `yaml:"url"       env:"ALEMAN_DATABASE_URL"`
	MaxConns int    `yaml:"max_conns" env:"ALEMAN_DATABASE_MAX_CONNS" env-default:"10"`
	MinConns int    `yaml:"min_conns" env:"ALEMAN_DATABASE_MIN_CONNS" env-default:"1"`
	Migrate  bool   `yaml:"migrate"   env:"ALEMAN_DATABASE_MIGRATE"   env-default:"true"`
}

// CacheConfig holds Redis settings for the feedback cache. An empty URL
// disables caching.
type CacheConfig struct {
	URL         string        `yaml:"url"          env:"ALEMAN_CACHE_URL"`
	FeedbackTTL time.Duration `yaml:"feedback_ttl" env:"ALEMAN_CACHE_FEEDBACK_TTL" env-default:"24h"`
}

// AIConfig holds review provider settings.
type AIConfig struct {
	DeepSeek    ProviderConfig `yaml:"deepseek" env-prefix:"ALEMAN_AI_DEEPSEEK_"`
	OpenAI      ProviderConfig `yaml:"openai"   env-prefix:"ALEMAN_AI_OPENAI_"`
	Temperature float64        `yaml:"temperature" env:"ALEMAN_AI_TEMPERATURE" env-default:"0.6"`
	MaxTokens   int            `yaml:"max_tokens"  env:"ALEMAN_AI_MAX_TOKENS"  env-default:"1200"`
	Timeout     time.Duration  `yaml:"timeout"     env:"ALEMAN_AI_TIMEOUT"     env-default:"60s"`
	Require     bool           `yaml:"require"     env:"ALEMAN_AI_REQUIRE"     env-default:"false"`
}

// ProviderConfig holds one OpenAI-compatible provider.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"  env:"API_KEY"`
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	Model   string `yaml:"model"    env:"MODEL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"ALEMAN_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"ALEMAN_LOG_FORMAT" env-default:"json"`
}

// CurriculumConfig controls where week contexts come from. An empty Path
// uses the embedded weeks.
type CurriculumConfig struct {
	Path            string `yaml:"path"             env:"ALEMAN_CURRICULUM_PATH"`
	MaxWeek         int    `yaml:"max_week"         env:"ALEMAN_CURRICULUM_MAX_WEEK"         env-default:"12"`
	DuplicatePolicy string `yaml:"duplicate_policy" env:"ALEMAN_CURRICULUM_DUPLICATE_POLICY" env-default:"last-wins"`
}

// Load reads the YAML file named by ALEMAN_CONFIG_PATH, if set, then applies
// environment variables and defaults. Priority: env > YAML > defaults.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv(PathEnv); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("ALEMAN_SERVER_PORT must be in 1..65535, got %d", c.Server.Port)
	}
	if !slices.Contains([]string{"json", "text"}, c.Log.Format) {
		return fmt.Errorf("ALEMAN_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("ALEMAN_LOG_LEVEL must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if _, err := curriculum.ParseDuplicatePolicy(c.Curriculum.DuplicatePolicy); err != nil {
		return fmt.Errorf("ALEMAN_CURRICULUM_DUPLICATE_POLICY: %w", err)
	}
	if c.Curriculum.MaxWeek < 1 {
		return fmt.Errorf("ALEMAN_CURRICULUM_MAX_WEEK must be positive, got %d", c.Curriculum.MaxWeek)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("ALEMAN_DATABASE_MIN_CONNS (%d) exceeds ALEMAN_DATABASE_MAX_CONNS (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}
	if c.AI.Require && !c.HasAIProvider() {
		return fmt.Errorf("at least one AI provider must be configured")
	}
	return nil
}

// HasAIProvider returns true if at least one AI provider is configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.DeepSeek.APIKey != "" || c.AI.OpenAI.APIKey != ""
}
