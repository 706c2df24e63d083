package provider

import (
	"context"
	"errors"
	"fmt"
	"io"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/infra/logger"

	openai "github.com/sashabaranov/go-openai"
)

// BrowserSpeechEngine leaves synthesis to the client's speech API. The
// utterance is published as-is and the client speaks Text in Locale.
type BrowserSpeechEngine struct{}

func NewBrowserSpeechEngine() *BrowserSpeechEngine {
	return &BrowserSpeechEngine{}
}

func (BrowserSpeechEngine) Name() string { return "browser" }

func (BrowserSpeechEngine) Synthesize(ctx context.Context, u dto.Utterance) ([]byte, string, error) {
	return nil, "", ctx.Err()
}

// OpenAISpeechEngine renders utterances to MP3 through the TTS endpoint.
type OpenAISpeechEngine struct {
	Logger *logger.Logger
	client *openai.Client
	model  openai.SpeechModel
	voice  openai.SpeechVoice
}

func NewOpenAISpeechEngine(logger *logger.Logger, client *openai.Client, model, voice string) *OpenAISpeechEngine {
	if model == "" {
		model = string(openai.TTSModel1)
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAISpeechEngine{
		Logger: logger,
		client: client,
		model:  openai.SpeechModel(model),
		voice:  openai.SpeechVoice(voice),
	}
}

func (th *OpenAISpeechEngine) Name() string { return "openai" }

func (th *OpenAISpeechEngine) Synthesize(ctx context.Context, u dto.Utterance) ([]byte, string, error) {
	if u.Text == "" {
		return nil, "", errors.New("nothing to speak")
	}

	speed := u.Rate
	if speed <= 0 {
		speed = 1.0
	}

	body, err := th.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          th.model,
		Input:          u.Text,
		Voice:          th.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          speed,
	})
	if err != nil {
		return nil, "", fmt.Errorf("create speech: %w", err)
	}
	defer body.Close()

	audio, err := io.ReadAll(body)
	if err != nil {
		return nil, "", fmt.Errorf("read speech audio: %w", err)
	}
	return audio, "audio/mpeg", nil
}
