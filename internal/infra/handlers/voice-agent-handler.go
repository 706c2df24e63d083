package handlers

import (
	"net/http"

	"health-assistant/internal/domain/dto"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/middleware"
	"health-assistant/internal/infra/logger"

	"github.com/gorilla/mux"
)

type VoiceAgentHandlers struct {
	Logger   *logger.Logger
	Bookings Iservices.IPhoneAppointmentService
}

func NewVoiceAgentHandlers(logger *logger.Logger, bookings Iservices.IPhoneAppointmentService) *VoiceAgentHandlers {
	return &VoiceAgentHandlers{Logger: logger, Bookings: bookings}
}

func (th *VoiceAgentHandlers) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, th.Bookings.AgentInfo())
}

func (th *VoiceAgentHandlers) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.PhoneAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	appt, err := th.Bookings.Save(r.Context(), middleware.UserFromContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, th.Logger, "save phone appointment", err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

func (th *VoiceAgentHandlers) List(w http.ResponseWriter, r *http.Request) {
	list, err := th.Bookings.List(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "list phone appointments", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (th *VoiceAgentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.PhoneAppointmentUpdate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	appt, err := th.Bookings.Update(r.Context(), mux.Vars(r)["id"], middleware.UserFromContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, th.Logger, "update phone appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (th *VoiceAgentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := th.Bookings.Delete(r.Context(), mux.Vars(r)["id"], middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "delete phone appointment", err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "phone appointment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
