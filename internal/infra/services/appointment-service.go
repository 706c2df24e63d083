package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	"health-assistant/internal/domain/interfaces/repository"
	repoconstants "health-assistant/internal/domain/interfaces/repository/constants"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AppointmentService struct {
	Repository    repository.Repository[entities.Appointment]
	Profiles      Iservices.IProfileService
	Notifications Iservices.INotificationCenter
	Dispatcher    Iservices.INotificationDispatcher
	Logger        *logger.Logger
	Location      *time.Location
	now           func() time.Time
}

func NewAppointmentService(
	repo repository.Repository[entities.Appointment],
	profiles Iservices.IProfileService,
	notifications Iservices.INotificationCenter,
	dispatcher Iservices.INotificationDispatcher,
	logger *logger.Logger,
) *AppointmentService {
	return &AppointmentService{
		Repository:    repo,
		Profiles:      profiles,
		Notifications: notifications,
		Dispatcher:    dispatcher,
		Logger:        logger,
		Location:      time.Local,
		now:           time.Now,
	}
}

// Book stores a scheduled appointment, records an in-app notification and
// sends confirmations in the background.
func (th *AppointmentService) Book(ctx context.Context, user string, req dto.BookAppointmentRequest) (entities.Appointment, error) {
	if strings.TrimSpace(req.DoctorID) == "" || strings.TrimSpace(req.DoctorName) == "" {
		return entities.Appointment{}, fmt.Errorf("%w: doctor is required", ErrValidation)
	}
	appt := entities.Appointment{
		ID:          uuid.NewString(),
		UserID:      user,
		DoctorID:    req.DoctorID,
		DoctorName:  req.DoctorName,
		Date:        req.Date,
		Time:        req.Time,
		Status:      entities.AppointmentScheduled,
		MeetingLink: req.MeetingLink,
		Symptoms:    req.Symptoms,
		CreatedAt:   th.now(),
	}
	if _, err := appt.StartsAt(th.Location); err != nil {
		return entities.Appointment{}, fmt.Errorf("%w: date must be YYYY-MM-DD and time HH:MM", ErrValidation)
	}

	profile, err := th.Profiles.Get(ctx, user)
	if err != nil {
		return entities.Appointment{}, err
	}

	created, err := th.Repository.Create(ctx, repoconstants.APPOINTMENT_COLLECTION, appt)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to create appointment: %v", err))
		return entities.Appointment{}, err
	}

	if _, err := th.Notifications.Create(ctx, entities.Notification{
		UserID:        user,
		Type:          entities.NotificationAppointment,
		Title:         "Appointment Confirmed",
		Message:       fmt.Sprintf("Your appointment with %s is scheduled for %s at %s.", created.DoctorName, created.Date, created.Time),
		AppointmentID: created.ID,
	}); err != nil {
		th.Logger.Warn("Could not record appointment notification", logrus.Fields{"appointment_id": created.ID, "error": err.Error()})
	}

	email, sms := AppointmentConfirmation(created, profile)
	th.Dispatcher.Dispatch(ctx, email, sms)

	return created, nil
}

// List returns the user's appointments, newest first.
func (th *AppointmentService) List(ctx context.Context, user string) ([]entities.Appointment, error) {
	all, err := th.Repository.FindAll(ctx, repoconstants.APPOINTMENT_COLLECTION)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Appointment, 0)
	for _, a := range all {
		if a.UserID == user {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (th *AppointmentService) Get(ctx context.Context, id, user string) (entities.Appointment, error) {
	appt, err := th.Repository.FindByID(ctx, repoconstants.APPOINTMENT_COLLECTION, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if appt.UserID != user {
		return entities.Appointment{}, ErrForbidden
	}
	return appt, nil
}

func (th *AppointmentService) Complete(ctx context.Context, id, user string) (entities.Appointment, error) {
	return th.transition(ctx, id, user, entities.AppointmentCompleted)
}

func (th *AppointmentService) Cancel(ctx context.Context, id, user string) (entities.Appointment, error) {
	return th.transition(ctx, id, user, entities.AppointmentCancelled)
}

// transition only ever leaves the scheduled state.
func (th *AppointmentService) transition(ctx context.Context, id, user string, to entities.AppointmentStatus) (entities.Appointment, error) {
	appt, err := th.Get(ctx, id, user)
	if err != nil {
		return entities.Appointment{}, err
	}
	if appt.Status != entities.AppointmentScheduled {
		return entities.Appointment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, to)
	}
	appt.Status = to
	return th.Repository.Update(ctx, repoconstants.APPOINTMENT_COLLECTION, appt.ID, appt)
}

// linkPrescription records the prescription on its appointment. An
// appointment carries at most one prescription.
func (th *AppointmentService) linkPrescription(ctx context.Context, appt entities.Appointment, prescriptionID string) error {
	if appt.PrescriptionID != "" {
		return ErrPrescriptionAlreadyLinked
	}
	appt.PrescriptionID = prescriptionID
	_, err := th.Repository.Update(ctx, repoconstants.APPOINTMENT_COLLECTION, appt.ID, appt)
	return err
}

// DueForReminder lists scheduled, unreminded appointments starting in (now, now+lead].
func (th *AppointmentService) DueForReminder(ctx context.Context, now time.Time, lead time.Duration) ([]entities.Appointment, error) {
	all, err := th.Repository.FindAll(ctx, repoconstants.APPOINTMENT_COLLECTION)
	if err != nil {
		return nil, err
	}
	due := make([]entities.Appointment, 0)
	for _, a := range all {
		if a.Status != entities.AppointmentScheduled || a.RemindedAt != nil {
			continue
		}
		start, err := a.StartsAt(th.Location)
		if err != nil {
			continue
		}
		if start.After(now) && !start.After(now.Add(lead)) {
			due = append(due, a)
		}
	}
	return due, nil
}

func (th *AppointmentService) MarkReminded(ctx context.Context, id string, at time.Time) error {
	appt, err := th.Repository.FindByID(ctx, repoconstants.APPOINTMENT_COLLECTION, id)
	if err != nil {
		return err
	}
	appt.RemindedAt = &at
	_, err = th.Repository.Update(ctx, repoconstants.APPOINTMENT_COLLECTION, appt.ID, appt)
	return err
}
