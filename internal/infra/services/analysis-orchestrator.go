package services

import (
	"context"
	"fmt"
	"strings"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/infra/metrics"
	"health-assistant/internal/infra/provider"
	"health-assistant/internal/util"

	"github.com/sirupsen/logrus"
)

// AnalysisOrchestrator turns one submission into a user message and an
// assistant message on the session transcript. Reasoning failures are
// absorbed here and become the fixed apology line.
type AnalysisOrchestrator struct {
	Logger    *logger.Logger
	Reasoning provider.IReasoningProvider
}

func NewAnalysisOrchestrator(logger *logger.Logger, reasoning provider.IReasoningProvider) *AnalysisOrchestrator {
	return &AnalysisOrchestrator{Logger: logger, Reasoning: reasoning}
}

// Submit returns ErrEmptyInput or ErrBusy without touching the transcript.
// Any other outcome appends exactly two messages and returns a nil error.
func (th *AnalysisOrchestrator) Submit(ctx context.Context, session *ChatSession, profile *entities.UserProfile, sub dto.Submission) (dto.SubmitResult, error) {
	sub.Text = strings.TrimSpace(sub.Text)

	if len(sub.Image) == 0 {
		if staged := session.StagedImage(); staged != "" {
			img, mime, err := util.DecodeDataURL(staged, "image/jpeg")
			if err != nil {
				return dto.SubmitResult{}, fmt.Errorf("%w: staged image: %v", ErrValidation, err)
			}
			sub.Image, sub.ImageMIMEType = img, mime
		}
	}

	if sub.Text == "" && len(sub.Audio) == 0 && len(sub.Image) == 0 {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.SubmitResult{}, ErrEmptyInput
	}

	if !session.tryAcquire() {
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeRejected).Inc()
		return dto.SubmitResult{}, ErrBusy
	}
	defer session.release()

	session.takeStagedImage()

	userText := sub.Text
	if userText == "" && len(sub.Audio) > 0 {
		userText = VoiceInputLabel
	}
	userMsg := session.transcript.Append(entities.ChatMessage{
		Role:      entities.RoleUser,
		Text:      userText,
		ImageData: util.EncodeDataURL(imageMIME(sub.ImageMIMEType), sub.Image),
	})

	language := session.Language()
	name := displayName(profile)

	analysis, err := th.analyze(ctx, buildAnalysisRequest(profile, language, sub))
	if err != nil {
		th.Logger.Error("Symptom analysis failed", logrus.Fields{
			"session_id": session.ID,
			"user":       session.UserID,
			"error":      err.Error(),
		})
		metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeFailure).Inc()

		apology := session.transcript.Append(entities.ChatMessage{
			Role: entities.RoleAssistant,
			Text: ApologyMessage,
		})
		return dto.SubmitResult{UserMessage: userMsg, AssistantMessage: apology}, nil
	}

	session.setLatest(analysis)
	reply := session.transcript.Append(entities.ChatMessage{
		Role:     entities.RoleAssistant,
		Text:     ResponseTemplate(TemplatesFor(language), analysis.EmergencyContact, name),
		Analysis: analysis,
	})
	metrics.AnalysisRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()

	session.speech.Speak(ctx, NewUtterance(analysis.Summary, language, 1.0))

	return dto.SubmitResult{UserMessage: userMsg, AssistantMessage: reply, Analysis: analysis}, nil
}

func (th *AnalysisOrchestrator) analyze(ctx context.Context, req dto.AnalysisRequest) (*entities.AnalysisResult, error) {
	raw, err := th.Reasoning.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("reasoning service: %w", err)
	}
	return ParseAnalysis(raw)
}

// buildAnalysisRequest orders parts audio, image, text.
func buildAnalysisRequest(profile *entities.UserProfile, language entities.LanguageCode, sub dto.Submission) dto.AnalysisRequest {
	req := dto.AnalysisRequest{SystemInstruction: BuildSystemInstruction(profile, language)}
	if len(sub.Audio) > 0 {
		mime := sub.AudioMIMEType
		if mime == "" {
			mime = "audio/wav"
		}
		req.Parts = append(req.Parts, dto.ContentPart{Kind: dto.PartAudio, MIMEType: mime, Data: sub.Audio})
	}
	if len(sub.Image) > 0 {
		req.Parts = append(req.Parts, dto.ContentPart{Kind: dto.PartImage, MIMEType: imageMIME(sub.ImageMIMEType), Data: sub.Image})
	}
	if sub.Text != "" {
		req.Parts = append(req.Parts, dto.ContentPart{Kind: dto.PartText, Text: sub.Text})
	}
	return req
}

func imageMIME(mime string) string {
	if mime == "" {
		return "image/jpeg"
	}
	return mime
}

func displayName(profile *entities.UserProfile) string {
	if profile == nil || strings.TrimSpace(profile.FullName) == "" {
		return "friend"
	}
	return profile.FullName
}
