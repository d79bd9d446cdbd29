// Package assistant orchestrates one documentation Q&A session: it keeps
// the document cache fresh, assembles the prompt, calls the completion
// endpoint and post-processes the answer.
//
// Error policy: Answer never fails. Every failure path collapses into a
// fixed user-facing message; no raw error text from a remote service
// reaches the presentation layer. Nothing is retried automatically.
package assistant

import (
	"context"
	"errors"
	"fmt"

	"github.com/justentropy-lol/entropy-assistant/internal/claude"
	"github.com/justentropy-lol/entropy-assistant/internal/docs"
	"github.com/justentropy-lol/entropy-assistant/internal/log"
	"github.com/justentropy-lol/entropy-assistant/internal/session"
)

// Fixed user-facing messages for each terminal failure state.
const (
	// MsgNoDocs is returned when the documentation could not be loaded.
	MsgNoDocs = "Could not load Entropy documentation. Please try again later."

	// MsgNoContext is returned when documents exist but assembled to an
	// empty context (pathological: e.g. every file is zero-length).
	MsgNoContext = "No Entropy documentation content available."

	// MsgInvalidAPIKey is returned on an authentication failure.
	MsgInvalidAPIKey = "Invalid Claude API key. Please check the API key configuration."

	// MsgRateLimited is returned on a rate-limit response. The caller
	// re-asks; the assistant never retries on its own.
	MsgRateLimited = "Rate limit exceeded. Please wait a moment and try again."
)

// DocumentStore is the slice of docs.Cache the assistant depends on.
type DocumentStore interface {
	Valid() bool
	Refresh(ctx context.Context) (docs.DocumentSet, error)
	Documents() docs.DocumentSet
	Branch() string
}

// Completer is the completion endpoint. *claude.Client implements it.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
}

// Config configures an Assistant. Store and Completer are required.
type Config struct {
	Store     DocumentStore
	Completer Completer

	// RepoOwner and RepoName locate the repository citations link into.
	RepoOwner string
	RepoName  string

	// AnnotateCitations enables rewriting filename citations into links.
	AnnotateCitations bool

	Logger log.Logger
}

// Assistant answers documentation questions for one session.
//
// It owns the session's conversational memory: a successful answer appends
// an exchange to the history, a failed attempt does not. Failure messages
// would otherwise leak back into the next prompt through the transcript.
type Assistant struct {
	store     DocumentStore
	completer Completer
	history   *session.History

	repoOwner string
	repoName  string
	annotate  bool
	logger    log.Logger
}

// New creates an assistant with an empty conversation history.
func New(cfg Config) (*Assistant, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("assistant: document store is required")
	}
	if cfg.Completer == nil {
		return nil, fmt.Errorf("assistant: completer is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	return &Assistant{
		store:     cfg.Store,
		completer: cfg.Completer,
		history:   session.NewHistory(),
		repoOwner: cfg.RepoOwner,
		repoName:  cfg.RepoName,
		annotate:  cfg.AnnotateCitations,
		logger:    logger,
	}, nil
}

// History exposes the session's conversation history so presentation layers
// can display or clear it.
func (a *Assistant) History() *session.History {
	return a.history
}

// Answer responds to one question.
//
// The returned string is always safe to show the user: either the model's
// (optionally citation-annotated) answer, or one of the fixed failure
// messages. Only real answers are recorded in the conversation history.
func (a *Assistant) Answer(ctx context.Context, question string) string {
	// EnsureFresh: at most one remote fetch per cache window.
	documents, err := a.store.Refresh(ctx)
	if err != nil {
		a.logger.Warn("documentation unavailable", "error", err)
		return MsgNoDocs
	}
	if len(documents) == 0 {
		return MsgNoDocs
	}

	// BuildContext.
	contextBlob := docs.BuildContext(documents)
	if contextBlob == "" {
		return MsgNoContext
	}

	// BuildHistoryContext + Compose.
	transcript := session.Transcript(a.history.Exchanges())
	systemPrompt := buildSystemPrompt(contextBlob, transcript)

	answer, err := a.completer.Complete(ctx, systemPrompt, question)
	if err != nil {
		return a.failureMessage(err)
	}

	if a.annotate {
		annotator := NewAnnotator(a.repoOwner, a.repoName, a.store.Branch())
		answer = annotator.Annotate(answer)
	}

	a.history.Add(question, answer)
	return answer
}

// failureMessage maps a completion error to its fixed user-facing string.
func (a *Assistant) failureMessage(err error) string {
	switch {
	case errors.Is(err, claude.ErrAuthentication):
		return MsgInvalidAPIKey
	case errors.Is(err, claude.ErrRateLimited):
		return MsgRateLimited
	default:
		a.logger.Error("completion failed", "error", err)
		return fmt.Sprintf("Error generating response: %v", err)
	}
}
