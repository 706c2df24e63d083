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

// SMSRelayProvider posts {to, message} to the backend SMS relay. Vendor
// credentials stay with the relay.
type SMSRelayProvider struct {
	Logger *logger.Logger
	client *resty.Client
	url    string
}

func NewSMSRelayProvider(logger *logger.Logger, url string, timeout time.Duration) *SMSRelayProvider {
	c := resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &SMSRelayProvider{Logger: logger, client: c, url: url}
}

func (th *SMSRelayProvider) Route() string { return "relay" }

func (th *SMSRelayProvider) SendSMS(ctx context.Context, msg dto.SMSMessage) error {
	if th.url == "" {
		return errors.New("SMS_RELAY_URL is not set")
	}
	if msg.To == "" || msg.Message == "" {
		return errors.New("recipient (to) and message cannot be empty")
	}

	resp, err := th.client.R().
		SetContext(ctx).
		SetBody(&msg).
		Post(th.url)
	if err != nil {
		return fmt.Errorf("SMS relay request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("SMS relay unexpected HTTP status: %s", resp.Status())
	}
	return nil
}
