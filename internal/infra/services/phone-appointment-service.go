package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	"health-assistant/internal/domain/interfaces/repository"
	repoconstants "health-assistant/internal/domain/interfaces/repository/constants"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/util"

	"github.com/sirupsen/logrus"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// PhoneAppointmentService stores bookings captured by the phone voice agent.
type PhoneAppointmentService struct {
	Repository  repository.Repository[entities.PhoneAppointment]
	Logger      *logger.Logger
	PhoneNumber string
	AssistantID string
	now         func() time.Time
}

func NewPhoneAppointmentService(repo repository.Repository[entities.PhoneAppointment], logger *logger.Logger, phoneNumber, assistantID string) *PhoneAppointmentService {
	return &PhoneAppointmentService{
		Repository:  repo,
		Logger:      logger,
		PhoneNumber: phoneNumber,
		AssistantID: assistantID,
		now:         time.Now,
	}
}

func phoneAppointmentID(now time.Time) string {
	var suffix [9]byte
	for i := range suffix {
		suffix[i] = base36[rand.Intn(len(base36))]
	}
	return fmt.Sprintf("phone_%d_%s", now.UnixMilli(), suffix[:])
}

func (th *PhoneAppointmentService) Save(ctx context.Context, user string, req dto.PhoneAppointmentRequest) (entities.PhoneAppointment, error) {
	if strings.TrimSpace(req.PatientName) == "" || strings.TrimSpace(req.PatientPhone) == "" {
		return entities.PhoneAppointment{}, fmt.Errorf("%w: patient name and phone are required", ErrValidation)
	}
	bookedVia := req.BookedVia
	switch bookedVia {
	case "":
		bookedVia = "phone"
	case "phone", "web":
	default:
		return entities.PhoneAppointment{}, fmt.Errorf("%w: bookedVia must be phone or web", ErrValidation)
	}

	now := th.now()
	appt := entities.PhoneAppointment{
		ID:              phoneAppointmentID(now),
		UserID:          user,
		PatientName:     strings.TrimSpace(req.PatientName),
		PatientPhone:    strings.TrimSpace(req.PatientPhone),
		AppointmentType: req.AppointmentType,
		PreferredDate:   req.PreferredDate,
		PreferredTime:   req.PreferredTime,
		Reason:          req.Reason,
		Status:          entities.PhoneAppointmentPending,
		BookedVia:       bookedVia,
		CallID:          req.CallID,
		CreatedAt:       now,
	}

	created, err := th.Repository.Create(ctx, repoconstants.PHONE_APPOINTMENT_COLLECTION, appt)
	if err != nil {
		th.Logger.Error(fmt.Sprintf("Failed to save phone appointment: %v", err))
		return entities.PhoneAppointment{}, err
	}
	th.Logger.Info("Phone appointment saved", logrus.Fields{"id": created.ID, "booked_via": created.BookedVia})
	return created, nil
}

// List returns the user's phone bookings, newest first.
func (th *PhoneAppointmentService) List(ctx context.Context, user string) ([]entities.PhoneAppointment, error) {
	all, err := th.Repository.FindAll(ctx, repoconstants.PHONE_APPOINTMENT_COLLECTION)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PhoneAppointment, 0)
	for _, a := range all {
		if a.UserID == user {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (th *PhoneAppointmentService) owned(ctx context.Context, id, user string) (entities.PhoneAppointment, error) {
	appt, err := th.Repository.FindByID(ctx, repoconstants.PHONE_APPOINTMENT_COLLECTION, id)
	if err != nil {
		return entities.PhoneAppointment{}, err
	}
	if appt.UserID != user {
		return entities.PhoneAppointment{}, ErrForbidden
	}
	return appt, nil
}

func (th *PhoneAppointmentService) Update(ctx context.Context, id, user string, update dto.PhoneAppointmentUpdate) (entities.PhoneAppointment, error) {
	appt, err := th.owned(ctx, id, user)
	if err != nil {
		return entities.PhoneAppointment{}, err
	}

	if update.Status != nil {
		switch *update.Status {
		case entities.PhoneAppointmentPending, entities.PhoneAppointmentConfirmed, entities.PhoneAppointmentCancelled:
			appt.Status = *update.Status
		default:
			return entities.PhoneAppointment{}, fmt.Errorf("%w: unknown status %q", ErrValidation, *update.Status)
		}
	}
	if update.PreferredDate != nil {
		appt.PreferredDate = *update.PreferredDate
	}
	if update.PreferredTime != nil {
		appt.PreferredTime = *update.PreferredTime
	}
	if update.Reason != nil {
		appt.Reason = *update.Reason
	}

	return th.Repository.Update(ctx, repoconstants.PHONE_APPOINTMENT_COLLECTION, appt.ID, appt)
}

// Delete reports whether a booking was removed. Another user's booking is
// ErrForbidden.
func (th *PhoneAppointmentService) Delete(ctx context.Context, id, user string) (bool, error) {
	if _, err := th.owned(ctx, id, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	err := th.Repository.Delete(ctx, repoconstants.PHONE_APPOINTMENT_COLLECTION, id)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (th *PhoneAppointmentService) AgentInfo() dto.VoiceAgentInfo {
	return dto.VoiceAgentInfo{
		PhoneNumber:          th.PhoneNumber,
		PhoneNumberFormatted: util.FormatPhoneNumber(th.PhoneNumber),
		AssistantID:          th.AssistantID,
	}
}
