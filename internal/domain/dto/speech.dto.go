package dto

import "health-assistant/internal/domain/entities"

// Utterance is a single speech request for the platform speech engine.
type Utterance struct {
	Text     string                `json:"text"`
	Language entities.LanguageCode `json:"language"`
	Locale   string                `json:"locale"`
	Rate     float64               `json:"rate"`
	Pitch    float64               `json:"pitch"`
	Volume   float64               `json:"volume"`
}

// SpeechClip is the utterance currently audible for a session. Audio is empty
// when the browser engine is expected to synthesize the text itself.
type SpeechClip struct {
	Utterance
	Sequence  uint64 `json:"sequence"`
	MIMEType  string `json:"mimeType,omitempty"`
	AudioData []byte `json:"audioData,omitempty"`
}
