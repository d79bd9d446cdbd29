package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/justentropy-lol/entropy-assistant/internal/assistant"
	"github.com/justentropy-lol/entropy-assistant/internal/log"
	"github.com/justentropy-lol/entropy-assistant/internal/session"
)

// Answerer is the slice of assistant.Assistant the handler depends on.
type Answerer interface {
	Answer(ctx context.Context, question string) string
	History() *session.History
}

// AskHandler handles question answering and session endpoints.
type AskHandler struct {
	bot    Answerer
	logger log.Logger
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(bot Answerer, logger log.Logger) *AskHandler {
	return &AskHandler{bot: bot, logger: logger}
}

// RegisterRoutes registers ask routes on the given mux.
func (h *AskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/ask", h.handleAsk)
	mux.HandleFunc("GET /api/questions", h.handleQuestions)
	mux.HandleFunc("GET /api/history", h.handleHistory)
	mux.HandleFunc("DELETE /api/history", h.handleClearHistory)
}

// AskRequest is the request body of POST /api/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the response body of POST /api/ask.
type AskResponse struct {
	Answer string `json:"answer"`
}

// handleAsk answers one question. The response is always 200 with an answer
// string; remote failures surface as the assistant's fixed messages, never
// as HTTP errors.
func (h *AskHandler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be JSON with a question field")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "MISSING_QUESTION", "question is required")
		return
	}

	h.logger.Info("question received", "length", len(req.Question))
	answer := h.bot.Answer(r.Context(), req.Question)

	writeJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// QuestionsResponse is the response body of GET /api/questions.
type QuestionsResponse struct {
	Questions []string `json:"questions"`
}

// handleQuestions serves the fixed suggested-questions list.
func (h *AskHandler) handleQuestions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, QuestionsResponse{Questions: assistant.SuggestedQuestions()})
}

// ExchangeResponse is one recorded exchange in GET /api/history.
type ExchangeResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// HistoryResponse is the response body of GET /api/history.
type HistoryResponse struct {
	Exchanges []ExchangeResponse `json:"exchanges"`
}

// handleHistory returns the session's recorded exchanges in arrival order.
func (h *AskHandler) handleHistory(w http.ResponseWriter, _ *http.Request) {
	exchanges := h.bot.History().Exchanges()
	resp := HistoryResponse{Exchanges: make([]ExchangeResponse, 0, len(exchanges))}
	for _, ex := range exchanges {
		resp.Exchanges = append(resp.Exchanges, ExchangeResponse{
			ID:        ex.ID.String(),
			Question:  ex.Question,
			Answer:    ex.Answer,
			Timestamp: ex.Timestamp,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleClearHistory wipes the conversation history wholesale.
func (h *AskHandler) handleClearHistory(w http.ResponseWriter, _ *http.Request) {
	h.bot.History().Clear()
	w.WriteHeader(http.StatusNoContent)
}
