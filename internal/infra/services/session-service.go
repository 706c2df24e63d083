package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/infra/provider"
	"health-assistant/internal/util"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SessionService keeps chat sessions in process memory keyed by id.
type SessionService struct {
	Logger       *logger.Logger
	Profiles     Iservices.IProfileService
	Orchestrator *AnalysisOrchestrator
	SpeechEngine provider.ISpeechEngine

	mu       sync.RWMutex
	sessions map[string]*ChatSession
	now      func() time.Time
}

func NewSessionService(logger *logger.Logger, profiles Iservices.IProfileService, orchestrator *AnalysisOrchestrator, engine provider.ISpeechEngine) *SessionService {
	return &SessionService{
		Logger:       logger,
		Profiles:     profiles,
		Orchestrator: orchestrator,
		SpeechEngine: engine,
		sessions:     map[string]*ChatSession{},
		now:          time.Now,
	}
}

// Create opens a session in the user's preferred language, seeded with a greeting.
func (th *SessionService) Create(ctx context.Context, user string) (dto.SessionView, error) {
	profile, err := th.Profiles.Get(ctx, user)
	if err != nil {
		return dto.SessionView{}, err
	}

	language := profile.PreferredLanguage
	if !entities.IsSupportedLanguage(language) {
		language = entities.DefaultLanguage
	}

	session := newChatSession(uuid.NewString(), user, language, NewSpeechPlayer(th.Logger, th.SpeechEngine), th.now)
	session.transcript.Reset(personalize(TemplatesFor(language).Greeting, displayName(&profile)))

	th.mu.Lock()
	th.sessions[session.ID] = session
	th.mu.Unlock()

	th.Logger.Info("Chat session created", logrus.Fields{"session_id": session.ID, "user": user, "language": language})
	return session.View(), nil
}

// Session resolves a session owned by user.
func (th *SessionService) Session(id, user string) (*ChatSession, error) {
	th.mu.RLock()
	session, ok := th.sessions[id]
	th.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if session.UserID != user {
		return nil, ErrForbidden
	}
	return session, nil
}

func (th *SessionService) Get(ctx context.Context, id, user string) (dto.SessionView, error) {
	session, err := th.Session(id, user)
	if err != nil {
		return dto.SessionView{}, err
	}
	return session.View(), nil
}

func (th *SessionService) Submit(ctx context.Context, id, user string, submission dto.Submission) (dto.SubmitResult, error) {
	session, err := th.Session(id, user)
	if err != nil {
		return dto.SubmitResult{}, err
	}

	var profile *entities.UserProfile
	if p, err := th.Profiles.Get(ctx, user); err == nil {
		profile = &p
	} else {
		th.Logger.Warn("Submitting without user context", logrus.Fields{"session_id": id, "error": err.Error()})
	}

	return th.Orchestrator.Submit(ctx, session, profile, submission)
}

func (th *SessionService) Clear(ctx context.Context, id, user string) (dto.SessionView, error) {
	session, err := th.Session(id, user)
	if err != nil {
		return dto.SessionView{}, err
	}

	name := "friend"
	if p, err := th.Profiles.Get(ctx, user); err == nil {
		name = displayName(&p)
	}
	session.reset(personalize(TemplatesFor(session.Language()).ChatCleared, name))
	return session.View(), nil
}

func (th *SessionService) StageImage(ctx context.Context, id, user, dataURL string) error {
	session, err := th.Session(id, user)
	if err != nil {
		return err
	}
	img, mime, err := util.DecodeDataURL(dataURL, "image/jpeg")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(img) == 0 {
		return fmt.Errorf("%w: image is empty", ErrValidation)
	}
	session.stageImage(util.EncodeDataURL(mime, img))
	return nil
}

func (th *SessionService) ClearStagedImage(ctx context.Context, id, user string) error {
	session, err := th.Session(id, user)
	if err != nil {
		return err
	}
	session.takeStagedImage()
	return nil
}

func (th *SessionService) SetLanguage(ctx context.Context, id, user string, language entities.LanguageCode) error {
	if !entities.IsSupportedLanguage(language) {
		return fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}
	session, err := th.Session(id, user)
	if err != nil {
		return err
	}
	session.setLanguage(language)
	return nil
}

func (th *SessionService) Speech(ctx context.Context, id, user string) (dto.SpeechClip, bool, error) {
	session, err := th.Session(id, user)
	if err != nil {
		return dto.SpeechClip{}, false, err
	}
	clip, ok := session.speech.Current()
	return clip, ok, nil
}

// Speaker exposes the session's player so other features can supersede its
// current utterance.
func (th *SessionService) Speaker(ctx context.Context, id, user string) (Iservices.ISpeaker, error) {
	session, err := th.Session(id, user)
	if err != nil {
		return nil, err
	}
	return session.speech, nil
}
