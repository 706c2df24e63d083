package services

import (
	"slices"
	"sync"
	"time"

	"health-assistant/internal/domain/entities"

	"github.com/google/uuid"
)

// Transcript is an append-only message log. Messages are copied in and out so
// nothing outside can mutate an appended message.
type Transcript struct {
	mu       sync.RWMutex
	messages []entities.ChatMessage
	now      func() time.Time
}

func NewTranscript(now func() time.Time) *Transcript {
	if now == nil {
		now = time.Now
	}
	return &Transcript{now: now}
}

// Append stamps the message with a fresh id and timestamp and stores it.
func (t *Transcript) Append(msg entities.ChatMessage) entities.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()

	msg.ID = uuid.NewString()
	msg.Timestamp = t.now()
	msg.Analysis = cloneAnalysis(msg.Analysis)
	t.messages = append(t.messages, msg)
	return msg
}

// Reset discards every message and seeds the log with a single assistant line.
func (t *Transcript) Reset(greeting string) entities.ChatMessage {
	t.mu.Lock()
	t.messages = nil
	t.mu.Unlock()
	return t.Append(entities.ChatMessage{Role: entities.RoleAssistant, Text: greeting})
}

func (t *Transcript) Messages() []entities.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]entities.ChatMessage, len(t.messages))
	for i, m := range t.messages {
		m.Analysis = cloneAnalysis(m.Analysis)
		out[i] = m
	}
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

func cloneAnalysis(a *entities.AnalysisResult) *entities.AnalysisResult {
	if a == nil {
		return nil
	}
	c := *a
	c.PossibleCauses = slices.Clone(a.PossibleCauses)
	c.Remedies = slices.Clone(a.Remedies)
	return &c
}
