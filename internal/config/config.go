// Package config provides application configuration management with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.entropy-assistant/config.yaml)
//  3. Default values (sensible defaults for quick start)
//
// Configuration categories:
//   - Claude: API key, model selection, output token limit
//   - Docs: GitHub repository the documentation is fetched from
//   - Log: level and format of diagnostic output
//
// Security: the API key is never logged; MarshalJSON masks it explicitly.
// Validation: fail-fast range checks in validation.go with clear error messages.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrMissingAPIKey indicates the Claude API key is missing.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates the model name is invalid.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidMaxTokens indicates the max tokens value is out of range.
	ErrInvalidMaxTokens = errors.New("invalid max tokens")

	// ErrInvalidRepo indicates the documentation repository is misconfigured.
	ErrInvalidRepo = errors.New("invalid documentation repository")
)

const (
	// DefaultModelName is the Claude model used when none is configured.
	DefaultModelName = "claude-3-5-sonnet-20241022"

	// DefaultMaxTokens is the default output token limit per completion.
	DefaultMaxTokens = 2500

	// MaxAllowedTokens is the upper bound accepted for max_tokens.
	// Matches the output ceiling of the claude-3-5 model family.
	MaxAllowedTokens = 8192

	// DefaultRepoOwner is the GitHub owner of the documentation repository.
	DefaultRepoOwner = "justentropy-lol"

	// DefaultRepoName is the GitHub repository holding the documentation.
	DefaultRepoName = "entropy-docs"
)

// Config stores application configuration.
// SECURITY: the API key is explicitly masked in MarshalJSON().
// When adding new sensitive fields, update MarshalJSON.
type Config struct {
	// Claude completion endpoint configuration
	ClaudeAPIKey string `mapstructure:"claude_api_key" json:"claude_api_key"` // SENSITIVE: masked in MarshalJSON
	ModelName    string `mapstructure:"model_name" json:"model_name"`
	MaxTokens    int    `mapstructure:"max_tokens" json:"max_tokens"`

	// Documentation repository configuration
	RepoOwner string `mapstructure:"repo_owner" json:"repo_owner"`
	RepoName  string `mapstructure:"repo_name" json:"repo_name"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level" json:"log_level"` // "debug", "info", "warn", "error"
	LogJSON  bool   `mapstructure:"log_json" json:"log_json"`
}

// Load loads configuration.
// Priority: Environment variables > Configuration file > Default values
func Load() (*Config, error) {
	// Configuration directory: ~/.entropy-assistant/
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".entropy-assistant")

	// Ensure directory exists (0750 for better security)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Also support current directory

	setDefaults(v)
	bindEnvVariables(v)

	// Read configuration file (if exists)
	if err := v.ReadInConfig(); err != nil {
		// Configuration file not found is not an error, use default values
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using default values",
			"search_paths", []string{configDir, "."},
			"config_name", "config.yaml")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// CRITICAL: Validate immediately (fail-fast)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("model_name", DefaultModelName)
	v.SetDefault("max_tokens", DefaultMaxTokens)

	v.SetDefault("repo_owner", DefaultRepoOwner)
	v.SetDefault("repo_name", DefaultRepoName)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
}

// bindEnvVariables binds environment variables explicitly.
// Only one variable carries a secret: CLAUDE_API_KEY, the completion
// endpoint credential. Its absence is a fatal configuration error
// caught by Validate().
func bindEnvVariables(v *viper.Viper) {
	// Helper to panic on unexpected bind errors (hardcoded strings can't fail)
	// If this panics, it's a BUG in our code, not a runtime error
	mustBind := func(key string, envVars ...string) {
		args := append([]string{key}, envVars...)
		if err := v.BindEnv(args...); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %v: %v", key, envVars, err))
		}
	}

	mustBind("claude_api_key", "CLAUDE_API_KEY")
	mustBind("model_name", "ENTROPY_MODEL_NAME")
	mustBind("repo_owner", "ENTROPY_REPO_OWNER")
	mustBind("repo_name", "ENTROPY_REPO_NAME")
	mustBind("log_level", "ENTROPY_LOG_LEVEL")
}

// maskedValue is the placeholder for masked sensitive data.
const maskedValue = "████████"

// maskSecret masks a secret string for safe logging.
// Fully masks short secrets; shows first/last 2 chars of longer ones so an
// operator can tell which key is loaded without leaking it.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return maskedValue
	}
	return s[:2] + "<" + maskedValue + ">" + s[len(s)-2:]
}

// MarshalJSON implements json.Marshaler with explicit sensitive field masking.
// The only sensitive field today is ClaudeAPIKey; when adding new secrets,
// update this method.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.ClaudeAPIKey = maskSecret(c.ClaudeAPIKey)
	return json.Marshal(a)
}

// Level converts the configured log level string to a slog.Level.
// Unknown values fall back to Info.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
