package Iservices

import (
	"context"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
)

// ITranslationService never fails: every method degrades to the input text
// (or the default language for detection) when the model cannot answer.
type ITranslationService interface {
	Translate(ctx context.Context, text string, from, to entities.LanguageCode) string
	BatchTranslate(ctx context.Context, items []dto.TranslationItem, from, to entities.LanguageCode) []dto.TranslationItem
	DetectLanguage(ctx context.Context, text string) entities.LanguageCode
	TranslateAndSpeak(ctx context.Context, text string, from, to entities.LanguageCode, speaker ISpeaker) dto.SpeechClip
}

// ISpeaker plays one utterance at a time; Speak supersedes whatever is playing.
type ISpeaker interface {
	Speak(ctx context.Context, u dto.Utterance) <-chan error
	Current() (dto.SpeechClip, bool)
}
