package services

import (
	"sync"
	"sync/atomic"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
)

// ChatSession is one user's live conversation. The transcript, staged image
// and latest analysis are only ever held in memory.
type ChatSession struct {
	ID        string
	UserID    string
	CreatedAt time.Time

	transcript *Transcript
	speech     *SpeechPlayer
	busy       atomic.Bool

	mu          sync.Mutex
	language    entities.LanguageCode
	stagedImage string
	latest      *entities.AnalysisResult
}

func newChatSession(id, user string, language entities.LanguageCode, speech *SpeechPlayer, now func() time.Time) *ChatSession {
	return &ChatSession{
		ID:         id,
		UserID:     user,
		CreatedAt:  now(),
		transcript: NewTranscript(now),
		speech:     speech,
		language:   language,
	}
}

func (s *ChatSession) Transcript() *Transcript { return s.transcript }

func (s *ChatSession) Speech() *SpeechPlayer { return s.speech }

// tryAcquire claims the single in-flight analysis slot.
func (s *ChatSession) tryAcquire() bool { return s.busy.CompareAndSwap(false, true) }

func (s *ChatSession) release() { s.busy.Store(false) }

func (s *ChatSession) Processing() bool { return s.busy.Load() }

func (s *ChatSession) Language() entities.LanguageCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

func (s *ChatSession) setLanguage(language entities.LanguageCode) {
	s.mu.Lock()
	s.language = language
	s.mu.Unlock()
}

func (s *ChatSession) StagedImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stagedImage
}

func (s *ChatSession) stageImage(dataURL string) {
	s.mu.Lock()
	s.stagedImage = dataURL
	s.mu.Unlock()
}

// takeStagedImage returns the staged image and clears the staging area.
func (s *ChatSession) takeStagedImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := s.stagedImage
	s.stagedImage = ""
	return img
}

func (s *ChatSession) LatestAnalysis() *entities.AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAnalysis(s.latest)
}

func (s *ChatSession) setLatest(a *entities.AnalysisResult) {
	s.mu.Lock()
	s.latest = cloneAnalysis(a)
	s.mu.Unlock()
}

// reset returns the session to its initial state with one greeting.
func (s *ChatSession) reset(greeting string) {
	s.mu.Lock()
	s.stagedImage = ""
	s.latest = nil
	s.mu.Unlock()
	s.speech.Stop()
	s.transcript.Reset(greeting)
}

func (s *ChatSession) View() dto.SessionView {
	return dto.SessionView{
		ID:             s.ID,
		Language:       s.Language(),
		Messages:       s.transcript.Messages(),
		LatestAnalysis: s.LatestAnalysis(),
		StagedImage:    s.StagedImage(),
		Processing:     s.Processing(),
	}
}
