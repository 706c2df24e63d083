package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/infra/metrics"
	"health-assistant/internal/infra/provider"

	"github.com/sirupsen/logrus"
)

// ErrSuperseded is delivered on a Speak channel when a newer utterance took over.
var ErrSuperseded = errors.New("utterance superseded")

// SpeechPlayer keeps at most one utterance current. Speak cancels whatever is
// being synthesized and publishes the new utterance immediately; audio is
// attached when the engine finishes. Engine failures never surface beyond the
// returned channel.
type SpeechPlayer struct {
	Logger *logger.Logger
	engine provider.ISpeechEngine

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current *dto.SpeechClip
}

func NewSpeechPlayer(logger *logger.Logger, engine provider.ISpeechEngine) *SpeechPlayer {
	return &SpeechPlayer{Logger: logger, engine: engine}
}

// NewUtterance builds an utterance with the locale for language and default
// pitch and volume. A non-positive rate means normal speed.
func NewUtterance(text string, language entities.LanguageCode, rate float64) dto.Utterance {
	if rate <= 0 {
		rate = 1.0
	}
	return dto.Utterance{
		Text:     text,
		Language: language,
		Locale:   entities.LocaleFor(language),
		Rate:     rate,
		Pitch:    1.0,
		Volume:   1.0,
	}
}

func (th *SpeechPlayer) Speak(ctx context.Context, u dto.Utterance) <-chan error {
	done := make(chan error, 1)

	th.mu.Lock()
	if th.cancel != nil {
		th.cancel()
	}
	th.seq++
	seq := th.seq
	speakCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	th.cancel = cancel
	th.current = &dto.SpeechClip{Utterance: u, Sequence: seq}
	th.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				th.Logger.Error(fmt.Sprintf("Recovered from panic in speech engine: %v", r))
				metrics.Speech.WithLabelValues(metrics.OutcomeFailure).Inc()
				done <- fmt.Errorf("speech engine panic: %v", r)
			}
		}()

		audio, mimeType, err := th.engine.Synthesize(speakCtx, u)

		th.mu.Lock()
		stale := th.seq != seq
		if !stale && err == nil && len(audio) > 0 {
			th.current.AudioData = audio
			th.current.MIMEType = mimeType
		}
		th.mu.Unlock()

		switch {
		case stale:
			metrics.Speech.WithLabelValues(metrics.OutcomeSkipped).Inc()
			done <- ErrSuperseded
		case err != nil:
			th.Logger.Warn("Speech synthesis failed", logrus.Fields{
				"engine": th.engine.Name(),
				"locale": u.Locale,
				"error":  err.Error(),
			})
			metrics.Speech.WithLabelValues(metrics.OutcomeFailure).Inc()
			done <- err
		default:
			metrics.Speech.WithLabelValues(metrics.OutcomeSuccess).Inc()
			done <- nil
		}
	}()

	return done
}

// Current returns a copy of the latest utterance, if any.
func (th *SpeechPlayer) Current() (dto.SpeechClip, bool) {
	th.mu.Lock()
	defer th.mu.Unlock()
	if th.current == nil {
		return dto.SpeechClip{}, false
	}
	clip := *th.current
	clip.AudioData = append([]byte(nil), th.current.AudioData...)
	return clip, true
}

// Stop cancels synthesis and forgets the current utterance.
func (th *SpeechPlayer) Stop() {
	th.mu.Lock()
	defer th.mu.Unlock()
	if th.cancel != nil {
		th.cancel()
		th.cancel = nil
	}
	th.seq++
	th.current = nil
}
