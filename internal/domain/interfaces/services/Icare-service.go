package Iservices

import (
	"context"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
)

type IAppointmentService interface {
	Book(ctx context.Context, user string, req dto.BookAppointmentRequest) (entities.Appointment, error)
	List(ctx context.Context, user string) ([]entities.Appointment, error)
	Get(ctx context.Context, id, user string) (entities.Appointment, error)
	Complete(ctx context.Context, id, user string) (entities.Appointment, error)
	Cancel(ctx context.Context, id, user string) (entities.Appointment, error)
	DueForReminder(ctx context.Context, now time.Time, lead time.Duration) ([]entities.Appointment, error)
	MarkReminded(ctx context.Context, id string, at time.Time) error
}

type IPrescriptionService interface {
	Issue(ctx context.Context, user string, req dto.IssuePrescriptionRequest) (entities.Prescription, error)
	List(ctx context.Context, user string) ([]entities.Prescription, error)
	Get(ctx context.Context, id, user string) (entities.Prescription, error)
}

type INotificationCenter interface {
	Create(ctx context.Context, n entities.Notification) (entities.Notification, error)
	List(ctx context.Context, user string) ([]entities.Notification, error)
	UnreadCount(ctx context.Context, user string) (int, error)
	MarkRead(ctx context.Context, id, user string) (entities.Notification, error)
	MarkAllRead(ctx context.Context, user string) (int, error)
}

// INotificationDispatcher delivers out-of-band messages. SMS is skipped when
// sms is nil.
type INotificationDispatcher interface {
	SendEmail(ctx context.Context, msg dto.EmailMessage) bool
	SendSMS(ctx context.Context, msg dto.SMSMessage) bool
	Deliver(ctx context.Context, email dto.EmailMessage, sms *dto.SMSMessage) dto.DeliveryReport
	Dispatch(ctx context.Context, email dto.EmailMessage, sms *dto.SMSMessage) <-chan dto.DeliveryReport
}
