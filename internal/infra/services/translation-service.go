package services

import (
	"context"
	"strings"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/infra/metrics"
	"health-assistant/internal/infra/provider"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	batchConcurrency = 5
	translatedRate   = 0.9
)

// TranslationService fails open: any error yields the untranslated input.
type TranslationService struct {
	Logger       *logger.Logger
	Reasoning    provider.IReasoningProvider
	SpeechEngine provider.ISpeechEngine
}

func NewTranslationService(logger *logger.Logger, reasoning provider.IReasoningProvider, engine provider.ISpeechEngine) *TranslationService {
	return &TranslationService{Logger: logger, Reasoning: reasoning, SpeechEngine: engine}
}

func (th *TranslationService) Translate(ctx context.Context, text string, from, to entities.LanguageCode) string {
	if from == to || strings.TrimSpace(text) == "" {
		metrics.Translations.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return text
	}

	fromLang, okFrom := entities.LookupLanguage(from)
	toLang, okTo := entities.LookupLanguage(to)
	if !okFrom || !okTo {
		th.Logger.Warn("Translation requested for unsupported language", logrus.Fields{"from": from, "to": to})
		metrics.Translations.WithLabelValues(metrics.OutcomeFallback).Inc()
		return text
	}

	translated, err := th.Reasoning.Complete(ctx, translationInstruction(fromLang, toLang), text)
	if err != nil || translated == "" {
		fields := logrus.Fields{"from": from, "to": to}
		if err != nil {
			fields["error"] = err.Error()
		}
		th.Logger.Error("Translation failed, returning original text", fields)
		metrics.Translations.WithLabelValues(metrics.OutcomeFallback).Inc()
		return text
	}

	metrics.Translations.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return translated
}

// BatchTranslate translates up to five items at a time and keeps input order.
func (th *TranslationService) BatchTranslate(ctx context.Context, items []dto.TranslationItem, from, to entities.LanguageCode) []dto.TranslationItem {
	out := make([]dto.TranslationItem, len(items))
	copy(out, items)
	if from == to {
		return out
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i := range items {
		i := i
		g.Go(func() error {
			out[i].Text = th.Translate(gctx, items[i].Text, from, to)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// DetectLanguage asks the model for a supported code and defaults to English.
func (th *TranslationService) DetectLanguage(ctx context.Context, text string) entities.LanguageCode {
	if strings.TrimSpace(text) == "" {
		return entities.DefaultLanguage
	}
	answer, err := th.Reasoning.Complete(ctx, detectionInstruction(), text)
	if err != nil {
		th.Logger.Error("Language detection failed", logrus.Fields{"error": err.Error()})
		return entities.DefaultLanguage
	}

	code := entities.LanguageCode(strings.ToLower(strings.Trim(strings.TrimSpace(answer), `."'`)))
	if !entities.IsSupportedLanguage(code) {
		return entities.DefaultLanguage
	}
	return code
}

// TranslateAndSpeak translates then speaks the result in the target locale at
// a slightly slower rate. A nil speaker gets a one-off player. The returned
// clip is whatever the speaker holds once synthesis settles.
func (th *TranslationService) TranslateAndSpeak(ctx context.Context, text string, from, to entities.LanguageCode, speaker Iservices.ISpeaker) dto.SpeechClip {
	translated := th.Translate(ctx, text, from, to)

	if speaker == nil {
		speaker = NewSpeechPlayer(th.Logger, th.SpeechEngine)
	}
	utterance := NewUtterance(translated, to, translatedRate)

	select {
	case <-speaker.Speak(ctx, utterance):
	case <-ctx.Done():
	}

	clip, ok := speaker.Current()
	if !ok || clip.Text != translated {
		return dto.SpeechClip{Utterance: utterance}
	}
	return clip
}
