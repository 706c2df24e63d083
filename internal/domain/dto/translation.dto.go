package dto

import "health-assistant/internal/domain/entities"

type TranslationItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type TranslateRequest struct {
	Text string                `json:"text"`
	From entities.LanguageCode `json:"from"`
	To   entities.LanguageCode `json:"to"`
}

type BatchTranslateRequest struct {
	Messages []TranslationItem    `json:"messages"`
	From     entities.LanguageCode `json:"from"`
	To       entities.LanguageCode `json:"to"`
}

type DetectLanguageRequest struct {
	Text string `json:"text"`
}

type TranslateAndSpeakRequest struct {
	TranslateRequest
	SessionID string `json:"sessionId,omitempty"`
}
