package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justentropy-lol/entropy-assistant/internal/assistant"
	"github.com/justentropy-lol/entropy-assistant/internal/docs"
	"github.com/justentropy-lol/entropy-assistant/internal/log"
)

type chatStore struct {
	documents docs.DocumentSet
}

func (s *chatStore) Valid() bool                 { return true }
func (s *chatStore) Documents() docs.DocumentSet { return s.documents }
func (s *chatStore) Branch() string              { return "main" }
func (s *chatStore) Refresh(context.Context) (docs.DocumentSet, error) {
	return s.documents, nil
}

type chatCompleter struct {
	answer string
}

func (c *chatCompleter) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return c.answer, nil
}

func newChatApp(t *testing.T, answer string) *app {
	t.Helper()

	bot, err := assistant.New(assistant.Config{
		Store:     &chatStore{documents: docs.DocumentSet{"README.md": "Entropy generates entropy."}},
		Completer: &chatCompleter{answer: answer},
		RepoOwner: "justentropy-lol",
		RepoName:  "entropy-docs",
	})
	require.NoError(t, err)

	return &app{logger: log.NewNop(), bot: bot}
}

func TestChatLoop_QuitCommand(t *testing.T) {
	t.Parallel()

	a := newChatApp(t, "unused")
	var out bytes.Buffer

	err := chatLoop(context.Background(), a, strings.NewReader("/quit\n"), &out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "It's. Just. Entropy.")
}

func TestChatLoop_AnswersQuestion(t *testing.T) {
	t.Parallel()

	a := newChatApp(t, "Entropy is randomness you can mine.")
	var out bytes.Buffer

	err := chatLoop(context.Background(), a, strings.NewReader("What is Entropy?\n/exit\n"), &out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Entropy is randomness you can mine.")
	assert.Equal(t, 1, a.bot.History().Count())
}

func TestChatLoop_ClearCommand(t *testing.T) {
	t.Parallel()

	a := newChatApp(t, "answer")
	var out bytes.Buffer

	input := "What is Entropy?\n/clear\n/quit\n"
	err := chatLoop(context.Background(), a, strings.NewReader(input), &out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Conversation history cleared.")
	assert.Zero(t, a.bot.History().Count())
}

func TestChatLoop_QuestionsCommand(t *testing.T) {
	t.Parallel()

	a := newChatApp(t, "unused")
	var out bytes.Buffer

	err := chatLoop(context.Background(), a, strings.NewReader("/questions\n/quit\n"), &out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Popular questions:")
	assert.Contains(t, out.String(), "Ashlar mining device")
}

func TestChatLoop_BlankLinesIgnored(t *testing.T) {
	t.Parallel()

	a := newChatApp(t, "unused")
	var out bytes.Buffer

	err := chatLoop(context.Background(), a, strings.NewReader("\n   \n/quit\n"), &out)
	assert.NoError(t, err)
	assert.Zero(t, a.bot.History().Count())
}

func TestChatLoop_EOFEndsSession(t *testing.T) {
	t.Parallel()

	a := newChatApp(t, "unused")
	var out bytes.Buffer

	err := chatLoop(context.Background(), a, strings.NewReader(""), &out)
	assert.NoError(t, err)
}
