package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justentropy-lol/entropy-assistant/internal/log"
	"github.com/justentropy-lol/entropy-assistant/internal/session"
)

// fakeAnswerer implements Answerer with a canned reply.
type fakeAnswerer struct {
	answer  string
	history *session.History

	gotQuestion string
}

func newFakeAnswerer(answer string) *fakeAnswerer {
	return &fakeAnswerer{answer: answer, history: session.NewHistory()}
}

func (f *fakeAnswerer) Answer(_ context.Context, question string) string {
	f.gotQuestion = question
	return f.answer
}

func (f *fakeAnswerer) History() *session.History {
	return f.history
}

func TestAskHandler_Ask(t *testing.T) {
	bot := newFakeAnswerer("mine nothing, earn everything")
	h := NewAskHandler(bot, log.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/ask",
		strings.NewReader(`{"question":"how do I mine?"}`))
	w := httptest.NewRecorder()

	h.handleAsk(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mine nothing, earn everything", resp.Answer)
	assert.Equal(t, "how do I mine?", bot.gotQuestion)
}

func TestAskHandler_Ask_InvalidBody(t *testing.T) {
	h := NewAskHandler(newFakeAnswerer(""), log.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader("not json"))
	w := httptest.NewRecorder()

	h.handleAsk(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestAskHandler_Ask_MissingQuestion(t *testing.T) {
	h := NewAskHandler(newFakeAnswerer(""), log.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/ask", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	h.handleAsk(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_QUESTION")
}

func TestAskHandler_Questions(t *testing.T) {
	h := NewAskHandler(newFakeAnswerer(""), log.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/questions", nil)
	w := httptest.NewRecorder()

	h.handleQuestions(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp QuestionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Questions, 8)
	assert.Contains(t, resp.Questions, "How do I set up my Ashlar mining device?")
}

func TestAskHandler_History(t *testing.T) {
	bot := newFakeAnswerer("")
	bot.history.Add("q1", "a1")
	bot.history.Add("q2", "a2")
	h := NewAskHandler(bot, log.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()

	h.handleHistory(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Exchanges, 2)
	assert.Equal(t, "q1", resp.Exchanges[0].Question)
	assert.Equal(t, "a2", resp.Exchanges[1].Answer)
	assert.NotEmpty(t, resp.Exchanges[0].ID)
}

func TestAskHandler_ClearHistory(t *testing.T) {
	bot := newFakeAnswerer("")
	bot.history.Add("q", "a")
	h := NewAskHandler(bot, log.NewNop())

	req := httptest.NewRequest(http.MethodDelete, "/api/history", nil)
	w := httptest.NewRecorder()

	h.handleClearHistory(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, bot.history.Count())
}
