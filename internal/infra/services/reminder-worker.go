package services

import (
	"context"
	"fmt"
	"time"

	"health-assistant/internal/domain/entities"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// ReminderWorker polls for appointments starting within Lead and reminds
// each one exactly once.
type ReminderWorker struct {
	Appointments  Iservices.IAppointmentService
	Profiles      Iservices.IProfileService
	Notifications Iservices.INotificationCenter
	Dispatcher    Iservices.INotificationDispatcher
	Logger        *logger.Logger
	Interval      time.Duration
	Lead          time.Duration
	now           func() time.Time
}

func NewReminderWorker(
	appointments Iservices.IAppointmentService,
	profiles Iservices.IProfileService,
	notifications Iservices.INotificationCenter,
	dispatcher Iservices.INotificationDispatcher,
	logger *logger.Logger,
	interval, lead time.Duration,
) *ReminderWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	if lead <= 0 {
		lead = 30 * time.Minute
	}
	return &ReminderWorker{
		Appointments:  appointments,
		Profiles:      profiles,
		Notifications: notifications,
		Dispatcher:    dispatcher,
		Logger:        logger,
		Interval:      interval,
		Lead:          lead,
		now:           time.Now,
	}
}

// Run polls until ctx is cancelled.
func (th *ReminderWorker) Run(ctx context.Context) error {
	th.Logger.Info("Reminder worker starting", logrus.Fields{"interval": th.Interval.String(), "lead": th.Lead.String()})
	ticker := time.NewTicker(th.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			th.Logger.Info("Reminder worker stopping")
			return ctx.Err()
		case <-ticker.C:
			if _, err := th.ProcessOnce(ctx); err != nil {
				th.Logger.Error(fmt.Sprintf("Reminder pass failed: %v", err))
			}
		}
	}
}

// ProcessOnce sends every due reminder and returns how many were handled.
func (th *ReminderWorker) ProcessOnce(ctx context.Context) (int, error) {
	now := th.now()
	due, err := th.Appointments.DueForReminder(ctx, now, th.Lead)
	if err != nil {
		return 0, err
	}

	handled := 0
	for _, appt := range due {
		if err := th.remind(ctx, appt, now); err != nil {
			th.Logger.Error("Failed to send reminder", logrus.Fields{"appointment_id": appt.ID, "error": err.Error()})
			continue
		}
		handled++
	}
	return handled, nil
}

func (th *ReminderWorker) remind(ctx context.Context, appt entities.Appointment, now time.Time) error {
	profile, err := th.Profiles.Get(ctx, appt.UserID)
	if err != nil {
		return err
	}

	email, sms := AppointmentReminder(appt, profile, th.Lead)
	report := th.Dispatcher.Deliver(ctx, email, sms)

	// Marked before the in-app record so a failed record never resends.
	if err := th.Appointments.MarkReminded(ctx, appt.ID, now); err != nil {
		return err
	}

	if _, err := th.Notifications.Create(ctx, entities.Notification{
		UserID:        appt.UserID,
		Type:          entities.NotificationReminder,
		Title:         "Appointment Reminder",
		Message:       fmt.Sprintf("Your appointment with %s starts at %s.", appt.DoctorName, appt.Time),
		AppointmentID: appt.ID,
	}); err != nil {
		th.Logger.Warn("Could not record reminder notification", logrus.Fields{"appointment_id": appt.ID, "error": err.Error()})
	}

	th.Logger.Info("Reminder sent", logrus.Fields{
		"appointment_id": appt.ID,
		"email":          report.Email,
		"sms":            report.SMS,
	})
	return nil
}
