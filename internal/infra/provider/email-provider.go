package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/infra/logger"

	"github.com/go-resty/resty/v2"
)

// EmailRelayProvider posts {to, subject, body, html} to the backend relay.
type EmailRelayProvider struct {
	Logger *logger.Logger
	client *resty.Client
	url    string
}

func NewEmailRelayProvider(logger *logger.Logger, url string, timeout time.Duration) *EmailRelayProvider {
	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &EmailRelayProvider{Logger: logger, client: c, url: url}
}

func (th *EmailRelayProvider) Route() string { return "relay" }

func (th *EmailRelayProvider) SendEmail(ctx context.Context, msg dto.EmailMessage) error {
	if th.url == "" {
		return errors.New("EMAIL_RELAY_URL is not set")
	}
	if msg.To == "" {
		return errors.New("recipient (to) cannot be empty")
	}

	resp, err := th.client.R().
		SetContext(ctx).
		SetBody(&msg).
		Post(th.url)
	if err != nil {
		return fmt.Errorf("email relay request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("email relay unexpected HTTP status: %s", resp.Status())
	}
	return nil
}

type emailJSPayload struct {
	ServiceID      string              `json:"service_id"`
	TemplateID     string              `json:"template_id"`
	UserID         string              `json:"user_id"`
	AccessToken    string              `json:"accessToken,omitempty"`
	TemplateParams emailJSTemplateVars `json:"template_params"`
}

type emailJSTemplateVars struct {
	ToEmail     string `json:"to_email"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	HTMLContent string `json:"html_content"`
}

type EmailJSOptions struct {
	URL        string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Timeout    time.Duration
}

// EmailJSProvider is the secondary email route using the EmailJS REST API.
type EmailJSProvider struct {
	Logger *logger.Logger
	client *resty.Client
	opts   EmailJSOptions
}

func NewEmailJSProvider(logger *logger.Logger, opts EmailJSOptions) *EmailJSProvider {
	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(opts.Timeout)
	return &EmailJSProvider{Logger: logger, client: c, opts: opts}
}

func (th *EmailJSProvider) Route() string { return "emailjs" }

func (th *EmailJSProvider) SendEmail(ctx context.Context, msg dto.EmailMessage) error {
	if th.opts.ServiceID == "" || th.opts.TemplateID == "" || th.opts.PublicKey == "" {
		return errors.New("EmailJS is not configured")
	}

	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	payload := emailJSPayload{
		ServiceID:   th.opts.ServiceID,
		TemplateID:  th.opts.TemplateID,
		UserID:      th.opts.PublicKey,
		AccessToken: th.opts.PrivateKey,
		TemplateParams: emailJSTemplateVars{
			ToEmail:     msg.To,
			Subject:     msg.Subject,
			Message:     msg.Body,
			HTMLContent: html,
		},
	}

	resp, err := th.client.R().
		SetContext(ctx).
		SetBody(&payload).
		Post(th.opts.URL)
	if err != nil {
		return fmt.Errorf("EmailJS request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("EmailJS unexpected HTTP status: %s response_body %s", resp.Status(), resp.String())
	}
	return nil
}
