// Package session holds the conversational memory of one assistant instance.
//
// Responsibilities: record question/answer exchanges during a session and
// render the trimmed transcript that is fed back into the next completion
// request. Nothing is persisted; the history lives and dies with the
// session that owns it.
package session

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxTranscriptExchanges is how many of the most recent exchanges the
	// transcript includes.
	MaxTranscriptExchanges = 3

	// MaxTranscriptAnswerChars caps each answer inside the transcript so
	// prompt growth stays bounded across long sessions.
	MaxTranscriptAnswerChars = 500

	// truncationMarker is appended to answers cut at the cap.
	truncationMarker = "..."
)

// Exchange is one recorded question/answer pair. Immutable once appended.
type Exchange struct {
	ID        uuid.UUID
	Question  string
	Answer    string
	Timestamp time.Time
}

// History encapsulates conversation history with thread-safe access.
//
// Note: the zero value is NOT useful. Use NewHistory() to create instances.
type History struct {
	mu        sync.RWMutex
	exchanges []Exchange
	now       func() time.Time
}

// NewHistory creates an empty conversation history.
func NewHistory() *History {
	return &History{
		exchanges: make([]Exchange, 0),
		now:       time.Now,
	}
}

// Add appends a completed question/answer exchange.
func (h *History) Add(question, answer string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exchanges = append(h.exchanges, Exchange{
		ID:        uuid.New(),
		Question:  question,
		Answer:    answer,
		Timestamp: h.now(),
	})
}

// Exchanges returns a copy of all exchanges for thread-safe access.
func (h *History) Exchanges() []Exchange {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]Exchange, len(h.exchanges))
	copy(result, h.exchanges)
	return result
}

// Count returns the number of recorded exchanges.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.exchanges)
}

// Clear removes all exchanges.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.exchanges = make([]Exchange, 0)
}

// Transcript renders the trimmed conversation context for the next prompt:
// the last MaxTranscriptExchanges exchanges in arrival order, each question
// in full and each answer truncated at MaxTranscriptAnswerChars. An empty
// history yields the empty string.
func Transcript(exchanges []Exchange) string {
	if len(exchanges) == 0 {
		return ""
	}

	if len(exchanges) > MaxTranscriptExchanges {
		exchanges = exchanges[len(exchanges)-MaxTranscriptExchanges:]
	}

	var sb strings.Builder
	for i, ex := range exchanges {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("Q: ")
		sb.WriteString(ex.Question)
		sb.WriteString("\nA: ")
		sb.WriteString(truncateAnswer(ex.Answer))
		sb.WriteString("\n")
	}
	return sb.String()
}

// truncateAnswer cuts an answer at the transcript cap, keeping rune
// boundaries intact so the marker never lands mid-character.
func truncateAnswer(answer string) string {
	if len(answer) <= MaxTranscriptAnswerChars {
		return answer
	}
	runes := []rune(answer)
	if len(runes) <= MaxTranscriptAnswerChars {
		return answer
	}
	return string(runes[:MaxTranscriptAnswerChars]) + truncationMarker
}
