package dto

import "health-assistant/internal/domain/entities"

type PartKind string

const (
	PartAudio PartKind = "audio"
	PartImage PartKind = "image"
	PartText  PartKind = "text"
)

// ContentPart is one piece of a multimodal reasoning request. Data carries raw
// encoded bytes for audio and image parts; Text is used for text parts.
type ContentPart struct {
	Kind     PartKind
	MIMEType string
	Data     []byte
	Text     string
}

// AnalysisRequest is what the orchestrator hands to the reasoning provider.
type AnalysisRequest struct {
	SystemInstruction string
	Parts             []ContentPart
}

// Submission is one user turn captured from text box, recorder or image picker.
type Submission struct {
	Text          string
	Audio         []byte
	AudioMIMEType string
	Image         []byte
	ImageMIMEType string
}

// SubmitResult reports what the orchestrator appended to the transcript.
type SubmitResult struct {
	UserMessage      entities.ChatMessage     `json:"userMessage"`
	AssistantMessage entities.ChatMessage     `json:"assistantMessage"`
	Analysis         *entities.AnalysisResult `json:"analysis,omitempty"`
}
