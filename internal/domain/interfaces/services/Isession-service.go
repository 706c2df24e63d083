package Iservices

import (
	"context"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
)

// ISessionService owns the in-memory chat sessions. Every call is scoped to
// the authenticated user's email and rejects sessions owned by someone else.
type ISessionService interface {
	Create(ctx context.Context, user string) (dto.SessionView, error)
	Get(ctx context.Context, id, user string) (dto.SessionView, error)
	Submit(ctx context.Context, id, user string, submission dto.Submission) (dto.SubmitResult, error)
	Clear(ctx context.Context, id, user string) (dto.SessionView, error)
	StageImage(ctx context.Context, id, user, dataURL string) error
	ClearStagedImage(ctx context.Context, id, user string) error
	SetLanguage(ctx context.Context, id, user string, language entities.LanguageCode) error
	Speech(ctx context.Context, id, user string) (dto.SpeechClip, bool, error)
	Speaker(ctx context.Context, id, user string) (ISpeaker, error)
}
