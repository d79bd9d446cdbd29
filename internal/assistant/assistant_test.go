package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justentropy-lol/entropy-assistant/internal/claude"
	"github.com/justentropy-lol/entropy-assistant/internal/docs"
	"github.com/justentropy-lol/entropy-assistant/internal/github"
)

// fakeStore implements DocumentStore with canned documents.
type fakeStore struct {
	documents  docs.DocumentSet
	refreshErr error
	branch     string
}

func (f *fakeStore) Valid() bool                 { return len(f.documents) > 0 }
func (f *fakeStore) Documents() docs.DocumentSet { return f.documents }

func (f *fakeStore) Branch() string {
	if f.branch == "" {
		return "main"
	}
	return f.branch
}

func (f *fakeStore) Refresh(ctx context.Context) (docs.DocumentSet, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.documents, nil
}

// fakeCompleter implements Completer, recording the prompt it was given.
type fakeCompleter struct {
	answer string
	err    error

	gotSystem string
	gotUser   string
	calls     int
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.calls++
	f.gotSystem = systemPrompt
	f.gotUser = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func newTestAssistant(t *testing.T, store DocumentStore, completer Completer) *Assistant {
	t.Helper()
	a, err := New(Config{
		Store:             store,
		Completer:         completer,
		RepoOwner:         "justentropy-lol",
		RepoName:          "entropy-docs",
		AnnotateCitations: true,
	})
	require.NoError(t, err)
	return a
}

func someDocs() docs.DocumentSet {
	return docs.DocumentSet{
		"README.md":       "Entropy mines nothing.",
		"ashlar-setup.md": "Plug it in.",
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Completer: &fakeCompleter{}})
	assert.Error(t, err, "missing store")

	_, err = New(Config{Store: &fakeStore{}})
	assert.Error(t, err, "missing completer")
}

func TestAnswer_Success(t *testing.T) {
	completer := &fakeCompleter{answer: "It mines nothing, gloriously."}
	a := newTestAssistant(t, &fakeStore{documents: someDocs()}, completer)

	got := a.Answer(context.Background(), "what does entropy mine?")

	assert.Equal(t, "It mines nothing, gloriously.", got)
	assert.Equal(t, "what does entropy mine?", completer.gotUser,
		"the literal question is the sole user message")
	assert.Contains(t, completer.gotSystem, "=== README.md ===",
		"system prompt embeds the context blob")
	assert.Contains(t, completer.gotSystem, "STRICT GUIDELINES")
}

func TestAnswer_RecordsExchangeOnSuccessOnly(t *testing.T) {
	completer := &fakeCompleter{answer: "an answer"}
	a := newTestAssistant(t, &fakeStore{documents: someDocs()}, completer)

	a.Answer(context.Background(), "q1")
	assert.Equal(t, 1, a.History().Count())

	completer.err = claude.ErrRateLimited
	a.Answer(context.Background(), "q2")
	assert.Equal(t, 1, a.History().Count(),
		"failed attempts must not enter the conversation history")
}

func TestAnswer_TranscriptFeedsNextPrompt(t *testing.T) {
	completer := &fakeCompleter{answer: "first answer"}
	a := newTestAssistant(t, &fakeStore{documents: someDocs()}, completer)

	a.Answer(context.Background(), "first question")
	a.Answer(context.Background(), "second question")

	assert.Contains(t, completer.gotSystem, conversationHeader)
	assert.Contains(t, completer.gotSystem, "Q: first question")
	assert.Contains(t, completer.gotSystem, "A: first answer")
}

func TestAnswer_NoDocs(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{"refresh fails", &fakeStore{refreshErr: github.ErrRepositoryUnavailable}},
		{"no documents found", &fakeStore{refreshErr: docs.ErrNoDocuments}},
		{"empty set", &fakeStore{documents: docs.DocumentSet{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{answer: "unused"}
			a := newTestAssistant(t, tt.store, completer)

			got := a.Answer(context.Background(), "anything")

			assert.Equal(t, MsgNoDocs, got)
			assert.Equal(t, 0, completer.calls, "no completion without documentation")
			assert.Equal(t, 0, a.History().Count(),
				"failure paths leave the history unmodified")
		})
	}
}

func TestAnswer_EmptyContext(t *testing.T) {
	// Documents exist but the only file blows the whole context budget,
	// so assembly yields an empty blob.
	huge := strings.Repeat("x", docs.MaxContextChars)
	a := newTestAssistant(t, &fakeStore{documents: docs.DocumentSet{"big.md": huge}}, &fakeCompleter{})

	got := a.Answer(context.Background(), "anything")
	assert.Equal(t, MsgNoContext, got)
}

func TestAnswer_AuthenticationFailure(t *testing.T) {
	completer := &fakeCompleter{err: fmt.Errorf("%w: bad key", claude.ErrAuthentication)}
	a := newTestAssistant(t, &fakeStore{documents: someDocs()}, completer)

	got := a.Answer(context.Background(), "anything")
	assert.Equal(t, MsgInvalidAPIKey, got,
		"auth failures map to the fixed message, never raw error text")
}

func TestAnswer_RateLimited(t *testing.T) {
	completer := &fakeCompleter{err: claude.ErrRateLimited}
	a := newTestAssistant(t, &fakeStore{documents: someDocs()}, completer)

	got := a.Answer(context.Background(), "anything")
	assert.Equal(t, MsgRateLimited, got)
}

func TestAnswer_OtherFailureEmbedsDescription(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("endpoint overloaded")}
	a := newTestAssistant(t, &fakeStore{documents: someDocs()}, completer)

	got := a.Answer(context.Background(), "anything")
	assert.Contains(t, got, "Error generating response:")
	assert.Contains(t, got, "endpoint overloaded")
}

func TestAnswer_AnnotatesCitations(t *testing.T) {
	completer := &fakeCompleter{answer: "According to README.md, nothing is mined."}
	store := &fakeStore{documents: someDocs(), branch: "master"}
	a := newTestAssistant(t, store, completer)

	got := a.Answer(context.Background(), "what is mined?")

	assert.Contains(t, got,
		"[README.md](https://github.com/justentropy-lol/entropy-docs/blob/master/README.md)")
}

func TestAnswer_AnnotationDisabled(t *testing.T) {
	completer := &fakeCompleter{answer: "According to README.md, nothing."}
	a, err := New(Config{
		Store:     &fakeStore{documents: someDocs()},
		Completer: completer,
	})
	require.NoError(t, err)

	got := a.Answer(context.Background(), "q")
	assert.Equal(t, "According to README.md, nothing.", got)
}

func TestSuggestedQuestions(t *testing.T) {
	qs := SuggestedQuestions()
	assert.Len(t, qs, 8)

	// Returned slice is a copy.
	qs[0] = "mutated"
	assert.NotEqual(t, "mutated", SuggestedQuestions()[0])
}
