package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/infra/logger"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

type OpenAIOptions struct {
	APIKey             string
	BaseURL            string
	AnalysisModel      string
	TranslationModel   string
	TranscriptionModel string
	Timeout            time.Duration
	Retries            uint64
	RetryInterval      time.Duration
}

// OpenAIReasoningProvider talks to the chat completion and transcription APIs.
// Every call gets a per-attempt timeout and Retries extra attempts on
// transient failures.
type OpenAIReasoningProvider struct {
	Logger *logger.Logger
	client *openai.Client
	opts   OpenAIOptions
}

func NewOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

func NewOpenAIReasoningProvider(logger *logger.Logger, client *openai.Client, opts OpenAIOptions) *OpenAIReasoningProvider {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 500 * time.Millisecond
	}
	return &OpenAIReasoningProvider{Logger: logger, client: client, opts: opts}
}

// Analyze sends the multimodal request with a JSON-object response format.
// Audio parts are transcribed first and forwarded as text.
func (th *OpenAIReasoningProvider) Analyze(ctx context.Context, req dto.AnalysisRequest) ([]byte, error) {
	if len(req.Parts) == 0 {
		return nil, errors.New("analysis request has no content parts")
	}

	userParts := make([]openai.ChatMessagePart, 0, len(req.Parts))
	for _, part := range req.Parts {
		switch part.Kind {
		case dto.PartAudio:
			transcript, err := th.transcribe(ctx, part)
			if err != nil {
				return nil, err
			}
			userParts = append(userParts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: "Voice note transcript: " + transcript,
			})
		case dto.PartImage:
			userParts = append(userParts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL(part.MIMEType, part.Data),
					Detail: openai.ImageURLDetailAuto,
				},
			})
		case dto.PartText:
			userParts = append(userParts, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: part.Text,
			})
		default:
			return nil, fmt.Errorf("unknown content part kind %q", part.Kind)
		}
	}

	request := openai.ChatCompletionRequest{
		Model: th.opts.AnalysisModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, MultiContent: userParts},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	}

	content, err := th.chat(ctx, request)
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// Complete runs a plain system+user exchange on the translation model.
func (th *OpenAIReasoningProvider) Complete(ctx context.Context, systemInstruction, text string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: th.opts.TranslationModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0.2,
	}
	content, err := th.chat(ctx, request)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

func (th *OpenAIReasoningProvider) chat(ctx context.Context, request openai.ChatCompletionRequest) (string, error) {
	var content string
	err := th.withRetry(ctx, "chat completion", func(attemptCtx context.Context) error {
		resp, err := th.client.CreateChatCompletion(attemptCtx, request)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("chat completion returned no choices")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	return content, err
}

func (th *OpenAIReasoningProvider) transcribe(ctx context.Context, part dto.ContentPart) (string, error) {
	var text string
	err := th.withRetry(ctx, "transcription", func(attemptCtx context.Context) error {
		resp, err := th.client.CreateTranscription(attemptCtx, openai.AudioRequest{
			Model:    th.opts.TranscriptionModel,
			FilePath: "voice-input" + audioExtension(part.MIMEType),
			Reader:   bytes.NewReader(part.Data),
		})
		if err != nil {
			return err
		}
		text = strings.TrimSpace(resp.Text)
		return nil
	})
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("transcription returned no text")
	}
	return text, nil
}

func (th *OpenAIReasoningProvider) withRetry(ctx context.Context, op string, fn func(context.Context) error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = th.opts.RetryInterval
	exp.Multiplier = 2
	policy := backoff.WithMaxRetries(backoff.WithContext(exp, ctx), th.opts.Retries)

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, th.opts.Timeout)
		defer cancel()

		err := fn(attemptCtx)
		if err == nil {
			return nil
		}
		th.Logger.Warn(fmt.Sprintf("OpenAI %s attempt failed", op), logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		})
		if !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// retryable treats client errors other than rate limiting as final.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= 500
	}
	return true
}

func dataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}

func audioExtension(mimeType string) string {
	switch {
	case strings.Contains(mimeType, "webm"):
		return ".webm"
	case strings.Contains(mimeType, "ogg"):
		return ".ogg"
	case strings.Contains(mimeType, "mpeg"), strings.Contains(mimeType, "mp3"):
		return ".mp3"
	case strings.Contains(mimeType, "mp4"), strings.Contains(mimeType, "m4a"):
		return ".m4a"
	default:
		return ".wav"
	}
}
