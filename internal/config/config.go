package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogJSON  bool   `envconfig:"LOG_JSON" default:"true"`

	StoreDriver   string `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"HealthAssistant"`

	OpenAIAPIKey       string        `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL      string        `envconfig:"OPENAI_BASE_URL"`
	AnalysisModel      string        `envconfig:"ANALYSIS_MODEL" default:"gpt-4o"`
	TranslationModel   string        `envconfig:"TRANSLATION_MODEL" default:"gpt-4o-mini"`
	TranscriptionModel string        `envconfig:"TRANSCRIPTION_MODEL" default:"whisper-1"`
	ReasoningTimeout   time.Duration `envconfig:"REASONING_TIMEOUT" default:"60s"`
	ReasoningRetries   uint64        `envconfig:"REASONING_RETRIES" default:"1"`

	SpeechEngine string `envconfig:"SPEECH_ENGINE" default:"browser"`
	SpeechModel  string `envconfig:"SPEECH_MODEL" default:"tts-1"`
	SpeechVoice  string `envconfig:"SPEECH_VOICE" default:"alloy"`

	EmailRelayURL     string        `envconfig:"EMAIL_RELAY_URL"`
	SMSRelayURL       string        `envconfig:"SMS_RELAY_URL"`
	EmailJSServiceID  string        `envconfig:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID string        `envconfig:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey  string        `envconfig:"EMAILJS_PUBLIC_KEY"`
	EmailJSPrivateKey string        `envconfig:"EMAILJS_PRIVATE_KEY"`
	EmailJSURL        string        `envconfig:"EMAILJS_URL" default:"https://api.emailjs.com/api/v1.0/email/send"`
	NotifyTimeout     time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"10s"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"72h"`

	ReminderInterval time.Duration `envconfig:"REMINDER_INTERVAL" default:"1m"`
	ReminderLead     time.Duration `envconfig:"REMINDER_LEAD" default:"30m"`

	VoiceAgentPhone       string `envconfig:"VOICE_AGENT_PHONE"`
	VoiceAgentAssistantID string `envconfig:"VOICE_AGENT_ASSISTANT_ID"`

	CORSOrigin string `envconfig:"CORS_ORIGIN" default:"*"`
}

// LoadEnv reads .env into the process environment. A missing file is not fatal.
func LoadEnv() error {
	err := godotenv.Load(".env")
	if err != nil {
		log.Printf("could not load .env file: %v", err)
		return err
	}
	return nil
}

// Load parses the environment into a Config and checks the few values that have no usable default.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "mongo", "memory":
	default:
		return fmt.Errorf("STORE_DRIVER must be mongo or memory, got %q", c.StoreDriver)
	}
	switch c.SpeechEngine {
	case "browser", "openai":
	default:
		return fmt.Errorf("SPEECH_ENGINE must be browser or openai, got %q", c.SpeechEngine)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if c.ReminderInterval <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL must be positive")
	}
	return nil
}

// NewForTesting returns a Config that needs no external services.
func NewForTesting() *Config {
	return &Config{
		Port:               "0",
		LogLevel:           "error",
		StoreDriver:        "memory",
		MongoDatabase:      "HealthAssistantTest",
		AnalysisModel:      "gpt-4o",
		TranslationModel:   "gpt-4o-mini",
		TranscriptionModel: "whisper-1",
		ReasoningTimeout:   5 * time.Second,
		ReasoningRetries:   1,
		SpeechEngine:       "browser",
		SpeechModel:        "tts-1",
		SpeechVoice:        "alloy",
		NotifyTimeout:      2 * time.Second,
		JWTSecret:          "test-secret",
		TokenTTL:           time.Hour,
		ReminderInterval:   time.Minute,
		ReminderLead:       30 * time.Minute,
		CORSOrigin:         "*",
	}
}
