package routes

import (
	"encoding/json"
	"net/http"

	"health-assistant/internal/infra/handlers"
	"health-assistant/internal/infra/metrics"
	"health-assistant/internal/middleware"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux         *mux.Router
	Verifier    middleware.TokenVerifier
	Profiles    *handlers.ProfileHandlers
	Sessions    *handlers.SessionHandlers
	Translation *handlers.TranslationHandlers
	Care        *handlers.CareHandlers
	VoiceAgent  *handlers.VoiceAgentHandlers
}

func NewRoutes(
	mux *mux.Router,
	verifier middleware.TokenVerifier,
	profiles *handlers.ProfileHandlers,
	sessions *handlers.SessionHandlers,
	translation *handlers.TranslationHandlers,
	care *handlers.CareHandlers,
	voiceAgent *handlers.VoiceAgentHandlers,
) *Routes {
	return &Routes{mux, verifier, profiles, sessions, translation, care, voiceAgent}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
	r.Mux.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.Mux.PathPrefix("/api").Subrouter()
	api.HandleFunc("/languages", handlers.Languages).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", r.Profiles.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", r.Profiles.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(r.Verifier))

	protected.HandleFunc("/profile", r.Profiles.GetProfile).Methods(http.MethodGet)
	protected.HandleFunc("/profile", r.Profiles.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profile/language", r.Profiles.SetLanguage).Methods(http.MethodPut)

	protected.HandleFunc("/sessions", r.Sessions.Create).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{id}", r.Sessions.Get).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{id}/messages", r.Sessions.SubmitMessage).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{id}/image", r.Sessions.StageImage).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{id}/image", r.Sessions.ClearImage).Methods(http.MethodDelete)
	protected.HandleFunc("/sessions/{id}/clear", r.Sessions.Clear).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{id}/language", r.Sessions.SetLanguage).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{id}/speech", r.Sessions.Speech).Methods(http.MethodGet)

	protected.HandleFunc("/translate", r.Translation.Translate).Methods(http.MethodPost)
	protected.HandleFunc("/translate/batch", r.Translation.BatchTranslate).Methods(http.MethodPost)
	protected.HandleFunc("/translate/detect", r.Translation.DetectLanguage).Methods(http.MethodPost)
	protected.HandleFunc("/translate/speak", r.Translation.TranslateAndSpeak).Methods(http.MethodPost)

	protected.HandleFunc("/appointments", r.Care.BookAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.Care.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/complete", r.Care.CompleteAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}/cancel", r.Care.CancelAppointment).Methods(http.MethodPost)

	protected.HandleFunc("/prescriptions", r.Care.IssuePrescription).Methods(http.MethodPost)
	protected.HandleFunc("/prescriptions", r.Care.ListPrescriptions).Methods(http.MethodGet)
	protected.HandleFunc("/prescriptions/{id}", r.Care.GetPrescription).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", r.Care.ListNotifications).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/read-all", r.Care.MarkAllNotificationsRead).Methods(http.MethodPost)
	protected.HandleFunc("/notifications/{id}/read", r.Care.MarkNotificationRead).Methods(http.MethodPost)

	protected.HandleFunc("/voice-agent", r.VoiceAgent.Info).Methods(http.MethodGet)
	protected.HandleFunc("/voice-agent/appointments", r.VoiceAgent.List).Methods(http.MethodGet)
	protected.HandleFunc("/voice-agent/appointments", r.VoiceAgent.Save).Methods(http.MethodPost)
	protected.HandleFunc("/voice-agent/appointments/{id}", r.VoiceAgent.Update).Methods(http.MethodPatch)
	protected.HandleFunc("/voice-agent/appointments/{id}", r.VoiceAgent.Delete).Methods(http.MethodDelete)
}
