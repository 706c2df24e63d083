package Iservices

import (
	"context"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
)

type IPhoneAppointmentService interface {
	Save(ctx context.Context, user string, req dto.PhoneAppointmentRequest) (entities.PhoneAppointment, error)
	List(ctx context.Context, user string) ([]entities.PhoneAppointment, error)
	Update(ctx context.Context, id, user string, update dto.PhoneAppointmentUpdate) (entities.PhoneAppointment, error)
	Delete(ctx context.Context, id, user string) (bool, error)
	AgentInfo() dto.VoiceAgentInfo
}
