package entities

import "time"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is never mutated after it is appended to a transcript.
type ChatMessage struct {
	ID        string          `json:"id"`
	Role      ChatRole        `json:"role"`
	Text      string          `json:"text,omitempty"`
	ImageData string          `json:"imageData,omitempty"`
	Analysis  *AnalysisResult `json:"analysis,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
