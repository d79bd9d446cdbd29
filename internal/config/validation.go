package config

import (
	"fmt"
	"strings"
)

// Validate validates configuration values.
// Returns sentinel errors that can be checked with errors.Is().
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigNil
	}

	// 1. API key validation (required for every completion call)
	if c.ClaudeAPIKey == "" {
		return fmt.Errorf("%w: CLAUDE_API_KEY environment variable is required\n"+
			"Get your API key at: https://console.anthropic.com/settings/keys",
			ErrMissingAPIKey)
	}

	// 2. Model configuration validation
	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name cannot be empty", ErrInvalidModelName)
	}

	if c.MaxTokens < 1 || c.MaxTokens > MaxAllowedTokens {
		return fmt.Errorf("%w: must be between 1 and %d, got %d",
			ErrInvalidMaxTokens, MaxAllowedTokens, c.MaxTokens)
	}

	// 3. Documentation repository validation
	// Owner and name become path segments of GitHub API URLs; reject
	// anything that would break out of its segment.
	if c.RepoOwner == "" {
		return fmt.Errorf("%w: repo_owner cannot be empty", ErrInvalidRepo)
	}
	if c.RepoName == "" {
		return fmt.Errorf("%w: repo_name cannot be empty", ErrInvalidRepo)
	}
	for _, s := range []string{c.RepoOwner, c.RepoName} {
		if strings.ContainsAny(s, "/?#%") {
			return fmt.Errorf("%w: %q contains URL-reserved characters", ErrInvalidRepo, s)
		}
	}

	return nil
}
