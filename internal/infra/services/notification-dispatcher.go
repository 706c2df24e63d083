package services

import (
	"context"
	"fmt"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/infra/metrics"
	"health-assistant/internal/infra/provider"

	"github.com/sirupsen/logrus"
)

// NotificationDispatcher delivers email through the relay with one fallback
// attempt through the secondary sender. SMS only goes through the relay.
type NotificationDispatcher struct {
	Logger        *logger.Logger
	EmailPrimary  provider.IEmailSender
	EmailFallback provider.IEmailSender
	SMS           provider.ISMSSender
	Timeout       time.Duration
}

func NewNotificationDispatcher(logger *logger.Logger, primary, fallback provider.IEmailSender, sms provider.ISMSSender, timeout time.Duration) *NotificationDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NotificationDispatcher{Logger: logger, EmailPrimary: primary, EmailFallback: fallback, SMS: sms, Timeout: timeout}
}

func (th *NotificationDispatcher) SendEmail(ctx context.Context, msg dto.EmailMessage) bool {
	senders := []provider.IEmailSender{th.EmailPrimary, th.EmailFallback}
	for _, sender := range senders {
		if sender == nil {
			continue
		}
		attemptCtx, cancel := context.WithTimeout(ctx, th.Timeout)
		err := sender.SendEmail(attemptCtx, msg)
		cancel()
		metrics.Notifications.WithLabelValues("email", sender.Route(), metrics.Outcome(err == nil)).Inc()
		if err == nil {
			th.Logger.Info("Email sent", logrus.Fields{"route": sender.Route(), "to": msg.To})
			return true
		}
		th.Logger.Warn("Email delivery failed", logrus.Fields{
			"channel": "email",
			"route":   sender.Route(),
			"to":      msg.To,
			"error":   err.Error(),
		})
	}
	return false
}

func (th *NotificationDispatcher) SendSMS(ctx context.Context, msg dto.SMSMessage) bool {
	if th.SMS == nil {
		return false
	}
	attemptCtx, cancel := context.WithTimeout(ctx, th.Timeout)
	defer cancel()
	err := th.SMS.SendSMS(attemptCtx, msg)
	metrics.Notifications.WithLabelValues("sms", th.SMS.Route(), metrics.Outcome(err == nil)).Inc()
	if err != nil {
		th.Logger.Warn("SMS delivery failed", logrus.Fields{
			"channel": "sms",
			"route":   th.SMS.Route(),
			"error":   err.Error(),
		})
		return false
	}
	return true
}

// Deliver sends email and, when sms is set, an SMS, and reports both outcomes.
// Each send attempt, fallback included, gets its own Timeout.
func (th *NotificationDispatcher) Deliver(ctx context.Context, email dto.EmailMessage, sms *dto.SMSMessage) dto.DeliveryReport {
	report := dto.DeliveryReport{Email: th.SendEmail(ctx, email)}
	if sms != nil && sms.To != "" {
		report.SMSAttempted = true
		report.SMS = th.SendSMS(ctx, *sms)
	}

	if !report.Email && (!report.SMSAttempted || !report.SMS) {
		th.Logger.Warn("Notification reached no channel, in-app notification is the only record", logrus.Fields{
			"to":      email.To,
			"subject": email.Subject,
		})
	}
	return report
}

// Dispatch runs Deliver in the background, detached from ctx cancellation.
// The channel yields exactly one report.
func (th *NotificationDispatcher) Dispatch(ctx context.Context, email dto.EmailMessage, sms *dto.SMSMessage) <-chan dto.DeliveryReport {
	out := make(chan dto.DeliveryReport, 1)
	detached := context.WithoutCancel(ctx)

	go func() {
		defer close(out)
		defer func() {
			if r := recover(); r != nil {
				th.Logger.Error(fmt.Sprintf("Recovered from panic in notification dispatch: %v", r))
				out <- dto.DeliveryReport{}
			}
		}()
		out <- th.Deliver(detached, email, sms)
	}()

	return out
}
