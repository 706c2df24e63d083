package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/infra/repository"

	"github.com/stretchr/testify/require"
)

const testUser = "asha@example.com"

type fakeReasoning struct {
	mu            sync.Mutex
	analyzeCalls  []dto.AnalysisRequest
	completeCalls []string
	analyze       func(ctx context.Context, req dto.AnalysisRequest) ([]byte, error)
	complete      func(ctx context.Context, system, text string) (string, error)
}

func (f *fakeReasoning) Analyze(ctx context.Context, req dto.AnalysisRequest) ([]byte, error) {
	f.mu.Lock()
	f.analyzeCalls = append(f.analyzeCalls, req)
	fn := f.analyze
	f.mu.Unlock()
	if fn == nil {
		return nil, errors.New("no analyze stub")
	}
	return fn(ctx, req)
}

func (f *fakeReasoning) Complete(ctx context.Context, system, text string) (string, error) {
	f.mu.Lock()
	f.completeCalls = append(f.completeCalls, text)
	fn := f.complete
	f.mu.Unlock()
	if fn == nil {
		return "", errors.New("no complete stub")
	}
	return fn(ctx, system, text)
}

func (f *fakeReasoning) AnalyzeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.analyzeCalls)
}

func (f *fakeReasoning) CompleteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.completeCalls)
}

func respondWith(raw string) func(context.Context, dto.AnalysisRequest) ([]byte, error) {
	return func(context.Context, dto.AnalysisRequest) ([]byte, error) { return []byte(raw), nil }
}

const mildHeadache = `{"severity":"MILD","summary":"Mild headache","possibleCauses":["stress","dehydration"],"remedies":["rest","water"],"medicalAdvice":"See a doctor if it persists beyond 3 days.","disclaimer":"Not a substitute for professional advice.","emergencyContact":false}`

const severeChestPain = `{"severity":"SEVERE","summary":"Possible cardiac event","possibleCauses":["angina"],"remedies":[],"medicalAdvice":"Call emergency services now.","disclaimer":"Not a substitute for professional advice.","emergencyContact":true}`

type fakeEngine struct {
	mu    sync.Mutex
	calls []dto.Utterance
	audio []byte
	err   error
	block chan struct{}
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Synthesize(ctx context.Context, u dto.Utterance) ([]byte, string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, u)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, "", ctx.Err()
		}
	}
	if f.err != nil {
		return nil, "", f.err
	}
	return f.audio, "audio/mpeg", nil
}

type recordingEmail struct {
	mu    sync.Mutex
	route string
	err   error
	sent  []dto.EmailMessage
}

func (r *recordingEmail) Route() string { return r.route }

func (r *recordingEmail) SendEmail(ctx context.Context, msg dto.EmailMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func (r *recordingEmail) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type recordingSMS struct {
	mu   sync.Mutex
	err  error
	sent []dto.SMSMessage
}

func (r *recordingSMS) Route() string { return "relay" }

func (r *recordingSMS) SendSMS(ctx context.Context, msg dto.SMSMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func (r *recordingSMS) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func newProfileService(t *testing.T) *ProfileService {
	t.Helper()
	repo := repository.NewMemoryRepository(func(p entities.UserProfile) string { return p.Email })
	return NewProfileService(repo, NewTokenIssuer("test-secret", time.Hour), logger.NewNop())
}

func registerAsha(t *testing.T, profiles *ProfileService, language entities.LanguageCode, mobile string) entities.UserProfile {
	t.Helper()
	p, err := profiles.Register(context.Background(), dto.RegisterRequest{
		FullName:          "Asha Rao",
		Email:             testUser,
		Password:          "secret123",
		Age:               34,
		Gender:            "female",
		MedicalHistory:    "asthma",
		PreferredLanguage: language,
		MobileNumber:      mobile,
	})
	require.NoError(t, err)
	return p
}

type chatFixture struct {
	reasoning *fakeReasoning
	engine    *fakeEngine
	profiles  *ProfileService
	sessions  *SessionService
}

func newChatFixture(t *testing.T, language entities.LanguageCode) *chatFixture {
	t.Helper()
	reasoning := &fakeReasoning{}
	engine := &fakeEngine{}
	profiles := newProfileService(t)
	registerAsha(t, profiles, language, "")
	orchestrator := NewAnalysisOrchestrator(logger.NewNop(), reasoning)
	return &chatFixture{
		reasoning: reasoning,
		engine:    engine,
		profiles:  profiles,
		sessions:  NewSessionService(logger.NewNop(), profiles, orchestrator, engine),
	}
}
