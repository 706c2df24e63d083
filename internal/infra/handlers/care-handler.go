package handlers

import (
	"net/http"

	"health-assistant/internal/domain/dto"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/middleware"

	"github.com/gorilla/mux"
)

// CareHandlers serves appointments, prescriptions and in-app notifications.
type CareHandlers struct {
	Logger        *logger.Logger
	Appointments  Iservices.IAppointmentService
	Prescriptions Iservices.IPrescriptionService
	Notifications Iservices.INotificationCenter
}

func NewCareHandlers(
	logger *logger.Logger,
	appointments Iservices.IAppointmentService,
	prescriptions Iservices.IPrescriptionService,
	notifications Iservices.INotificationCenter,
) *CareHandlers {
	return &CareHandlers{
		Logger:        logger,
		Appointments:  appointments,
		Prescriptions: prescriptions,
		Notifications: notifications,
	}
}

func (th *CareHandlers) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	appt, err := th.Appointments.Book(r.Context(), middleware.UserFromContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, th.Logger, "book appointment", err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

func (th *CareHandlers) ListAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := th.Appointments.List(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "list appointments", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (th *CareHandlers) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := th.Appointments.Complete(r.Context(), mux.Vars(r)["id"], middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "complete appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (th *CareHandlers) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := th.Appointments.Cancel(r.Context(), mux.Vars(r)["id"], middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "cancel appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

func (th *CareHandlers) IssuePrescription(w http.ResponseWriter, r *http.Request) {
	var req dto.IssuePrescriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := th.Prescriptions.Issue(r.Context(), middleware.UserFromContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, th.Logger, "issue prescription", err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (th *CareHandlers) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	list, err := th.Prescriptions.List(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "list prescriptions", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (th *CareHandlers) GetPrescription(w http.ResponseWriter, r *http.Request) {
	p, err := th.Prescriptions.Get(r.Context(), mux.Vars(r)["id"], middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "get prescription", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (th *CareHandlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	list, err := th.Notifications.List(r.Context(), user)
	if err != nil {
		handleServiceError(w, th.Logger, "list notifications", err)
		return
	}
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": list, "unread": unread})
}

func (th *CareHandlers) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	n, err := th.Notifications.MarkRead(r.Context(), mux.Vars(r)["id"], middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "mark notification read", err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (th *CareHandlers) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	changed, err := th.Notifications.MarkAllRead(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "mark all notifications read", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": changed})
}
