package cmd

import (
	"fmt"

	"github.com/justentropy-lol/entropy-assistant/internal/assistant"
	"github.com/justentropy-lol/entropy-assistant/internal/claude"
	"github.com/justentropy-lol/entropy-assistant/internal/config"
	"github.com/justentropy-lol/entropy-assistant/internal/docs"
	"github.com/justentropy-lol/entropy-assistant/internal/github"
	"github.com/justentropy-lol/entropy-assistant/internal/log"
)

// app bundles the wired components a command needs.
type app struct {
	cfg    *config.Config
	logger log.Logger
	store  *docs.Cache
	bot    *assistant.Assistant
}

// setup loads configuration and wires the assistant: GitHub client →
// documentation cache → completion client → assistant. Every component
// gets its own logger context.
func setup() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger := log.New(log.Config{Level: cfg.Level(), JSON: cfg.LogJSON})

	gh, err := github.New(github.Config{
		Owner:  cfg.RepoOwner,
		Repo:   cfg.RepoName,
		Logger: logger.With("component", "github"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	store, err := docs.NewCache(docs.CacheConfig{
		Source: gh,
		Logger: logger.With("component", "docs"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating documentation cache: %w", err)
	}

	completer, err := claude.New(claude.Config{
		APIKey:    cfg.ClaudeAPIKey,
		Model:     cfg.ModelName,
		MaxTokens: cfg.MaxTokens,
		Logger:    logger.With("component", "claude"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating completion client: %w", err)
	}

	bot, err := assistant.New(assistant.Config{
		Store:             store,
		Completer:         completer,
		RepoOwner:         cfg.RepoOwner,
		RepoName:          cfg.RepoName,
		AnnotateCitations: true,
		Logger:            logger.With("component", "assistant"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating assistant: %w", err)
	}

	return &app{cfg: cfg, logger: logger, store: store, bot: bot}, nil
}
