package provider

import (
	"context"

	"health-assistant/internal/domain/dto"
)

// IReasoningProvider is the external generative model. Analyze returns the raw
// JSON document produced for the analysis schema; callers validate it.
type IReasoningProvider interface {
	Analyze(ctx context.Context, req dto.AnalysisRequest) ([]byte, error)
	Complete(ctx context.Context, systemInstruction, text string) (string, error)
}

// ISpeechEngine synthesizes an utterance. Engines that leave synthesis to the
// client return no audio and a nil error.
type ISpeechEngine interface {
	Name() string
	Synthesize(ctx context.Context, u dto.Utterance) (audio []byte, mimeType string, err error)
}

type IEmailSender interface {
	Route() string
	SendEmail(ctx context.Context, msg dto.EmailMessage) error
}

type ISMSSender interface {
	Route() string
	SendSMS(ctx context.Context, msg dto.SMSMessage) error
}
