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

// PrescriptionService issues prescriptions. They are never modified afterwards.
type PrescriptionService struct {
	Repository    repository.Repository[entities.Prescription]
	Appointments  *AppointmentService
	Profiles      Iservices.IProfileService
	Notifications Iservices.INotificationCenter
	Dispatcher    Iservices.INotificationDispatcher
	Logger        *logger.Logger
	now           func() time.Time
}

func NewPrescriptionService(
	repo repository.Repository[entities.Prescription],
	appointments *AppointmentService,
	profiles Iservices.IProfileService,
	notifications Iservices.INotificationCenter,
	dispatcher Iservices.INotificationDispatcher,
	logger *logger.Logger,
) *PrescriptionService {
	return &PrescriptionService{
		Repository:    repo,
		Appointments:  appointments,
		Profiles:      profiles,
		Notifications: notifications,
		Dispatcher:    dispatcher,
		Logger:        logger,
		now:           time.Now,
	}
}

func (th *PrescriptionService) Issue(ctx context.Context, user string, req dto.IssuePrescriptionRequest) (entities.Prescription, error) {
	if strings.TrimSpace(req.Diagnosis) == "" {
		return entities.Prescription{}, fmt.Errorf("%w: diagnosis is required", ErrValidation)
	}
	if len(req.Medications) == 0 {
		return entities.Prescription{}, fmt.Errorf("%w: at least one medication is required", ErrValidation)
	}

	appt, err := th.Appointments.Get(ctx, req.AppointmentID, user)
	if err != nil {
		return entities.Prescription{}, err
	}
	if appt.PrescriptionID != "" {
		return entities.Prescription{}, ErrPrescriptionAlreadyLinked
	}

	profile, err := th.Profiles.Get(ctx, user)
	if err != nil {
		return entities.Prescription{}, err
	}

	now := th.now()
	p := entities.Prescription{
		ID:            uuid.NewString(),
		AppointmentID: appt.ID,
		DoctorID:      appt.DoctorID,
		DoctorName:    appt.DoctorName,
		PatientID:     profile.Email,
		PatientName:   profile.FullName,
		Date:          now.Format("2006-01-02"),
		Diagnosis:     req.Diagnosis,
		Medications:   append([]entities.Medication(nil), req.Medications...),
		Instructions:  req.Instructions,
		FollowUp:      req.FollowUp,
		CreatedAt:     now,
	}

	created, err := th.Repository.Create(ctx, repoconstants.PRESCRIPTION_COLLECTION, p)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to create prescription: %v", err))
		return entities.Prescription{}, err
	}
	if err := th.Appointments.linkPrescription(ctx, appt, created.ID); err != nil {
		th.Logger.Error("Failed to link prescription to appointment", logrus.Fields{"appointment_id": appt.ID, "error": err.Error()})
		if delErr := th.Repository.Delete(ctx, repoconstants.PRESCRIPTION_COLLECTION, created.ID); delErr != nil {
			th.Logger.Error("Failed to remove unlinked prescription", logrus.Fields{"prescription_id": created.ID, "error": delErr.Error()})
		}
		return entities.Prescription{}, err
	}

	if _, err := th.Notifications.Create(ctx, entities.Notification{
		UserID:         user,
		Type:           entities.NotificationPrescription,
		Title:          "New Prescription",
		Message:        fmt.Sprintf("Dr. %s has issued a prescription for %s.", created.DoctorName, created.Diagnosis),
		AppointmentID:  appt.ID,
		PrescriptionID: created.ID,
	}); err != nil {
		th.Logger.Warn("Could not record prescription notification", logrus.Fields{"prescription_id": created.ID, "error": err.Error()})
	}

	email, sms := PrescriptionIssued(created, profile)
	th.Dispatcher.Dispatch(ctx, email, sms)

	return created, nil
}

// List returns the user's prescriptions, newest first.
func (th *PrescriptionService) List(ctx context.Context, user string) ([]entities.Prescription, error) {
	all, err := th.Repository.FindAll(ctx, repoconstants.PRESCRIPTION_COLLECTION)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Prescription, 0)
	for _, p := range all {
		if p.PatientID == user {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (th *PrescriptionService) Get(ctx context.Context, id, user string) (entities.Prescription, error) {
	p, err := th.Repository.FindByID(ctx, repoconstants.PRESCRIPTION_COLLECTION, id)
	if err != nil {
		return entities.Prescription{}, err
	}
	if p.PatientID != user {
		return entities.Prescription{}, ErrForbidden
	}
	return p, nil
}
