package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTranslation(complete func(ctx context.Context, system, text string) (string, error)) (*TranslationService, *fakeReasoning, *fakeEngine) {
	reasoning := &fakeReasoning{complete: complete}
	engine := &fakeEngine{}
	return NewTranslationService(logger.NewNop(), reasoning, engine), reasoning, engine
}

func upper(_ context.Context, _ string, text string) (string, error) {
	return strings.ToUpper(text), nil
}

func TestTranslate_SameLanguageIsIdentity(t *testing.T) {
	svc, reasoning, _ := newTranslation(upper)

	assert.Equal(t, "take rest", svc.Translate(context.Background(), "take rest", "hi", "hi"))
	items := []dto.TranslationItem{{ID: "1", Text: "a"}, {ID: "2", Text: "b"}}
	assert.Equal(t, items, svc.BatchTranslate(context.Background(), items, "en", "en"))
	assert.Zero(t, reasoning.CompleteCount())
}

func TestTranslate_BlankTextSkipsModel(t *testing.T) {
	svc, reasoning, _ := newTranslation(upper)
	assert.Equal(t, "  ", svc.Translate(context.Background(), "  ", "en", "hi"))
	assert.Zero(t, reasoning.CompleteCount())
}

func TestTranslate_UsesLanguageNames(t *testing.T) {
	var system string
	svc, _, _ := newTranslation(func(_ context.Context, s, text string) (string, error) {
		system = s
		return "आराम करें", nil
	})

	assert.Equal(t, "आराम करें", svc.Translate(context.Background(), "take rest", "en", "hi"))
	assert.Contains(t, system, "from English to Hindi")
}

func TestTranslate_FailsOpen(t *testing.T) {
	svc, _, _ := newTranslation(func(context.Context, string, string) (string, error) {
		return "", errors.New("quota exceeded")
	})
	assert.Equal(t, "take rest", svc.Translate(context.Background(), "take rest", "en", "hi"))

	empty, _, _ := newTranslation(func(context.Context, string, string) (string, error) { return "", nil })
	assert.Equal(t, "take rest", empty.Translate(context.Background(), "take rest", "en", "hi"))
}

func TestTranslate_UnsupportedLanguageReturnsInput(t *testing.T) {
	svc, reasoning, _ := newTranslation(upper)
	assert.Equal(t, "bonjour", svc.Translate(context.Background(), "bonjour", "fr", "en"))
	assert.Zero(t, reasoning.CompleteCount())
}

func TestBatchTranslate_PreservesOrder(t *testing.T) {
	svc, reasoning, _ := newTranslation(upper)

	var items []dto.TranslationItem
	for _, s := range []string{"one", "two", "three", "four", "five", "six", "seven"} {
		items = append(items, dto.TranslationItem{ID: s, Text: s})
	}

	out := svc.BatchTranslate(context.Background(), items, "en", "ta")
	require.Len(t, out, len(items))
	for i, item := range out {
		assert.Equal(t, items[i].ID, item.ID)
		assert.Equal(t, strings.ToUpper(items[i].Text), item.Text)
	}
	assert.Equal(t, len(items), reasoning.CompleteCount())
	assert.Equal(t, "one", items[0].Text)
}

func TestDetectLanguage(t *testing.T) {
	answers := map[string]string{"नमस्ते": " hi.\n", "vanakkam": "TA", "salut": "fr"}
	svc, _, _ := newTranslation(func(_ context.Context, _ string, text string) (string, error) {
		if text == "boom" {
			return "", errors.New("timeout")
		}
		return answers[text], nil
	})

	assert.EqualValues(t, "hi", svc.DetectLanguage(context.Background(), "नमस्ते"))
	assert.EqualValues(t, "ta", svc.DetectLanguage(context.Background(), "vanakkam"))
	assert.EqualValues(t, "en", svc.DetectLanguage(context.Background(), "salut"))
	assert.EqualValues(t, "en", svc.DetectLanguage(context.Background(), "boom"))
	assert.EqualValues(t, "en", svc.DetectLanguage(context.Background(), ""))
}

func TestTranslateAndSpeak_UsesTargetLocaleAndSlowerRate(t *testing.T) {
	svc, _, engine := newTranslation(func(context.Context, string, string) (string, error) {
		return "आराम करें", nil
	})
	engine.audio = []byte("mp3")

	clip := svc.TranslateAndSpeak(context.Background(), "take rest", "en", "hi", nil)
	assert.Equal(t, "आराम करें", clip.Text)
	assert.Equal(t, "hi-IN", clip.Locale)
	assert.Equal(t, 0.9, clip.Rate)
	assert.Equal(t, []byte("mp3"), clip.AudioData)

	require.Len(t, engine.calls, 1)
	assert.Equal(t, "hi-IN", engine.calls[0].Locale)
}

func TestTranslateAndSpeak_ReplacesSessionUtterance(t *testing.T) {
	svc, _, engine := newTranslation(upper)
	player := NewSpeechPlayer(logger.NewNop(), engine)
	waitDone(t, player.Speak(context.Background(), NewUtterance("older", "en", 1)))

	clip := svc.TranslateAndSpeak(context.Background(), "rest", "en", "ta", player)
	current, ok := player.Current()
	require.True(t, ok)
	assert.Equal(t, "REST", current.Text)
	assert.Equal(t, clip.Sequence, current.Sequence)
}
