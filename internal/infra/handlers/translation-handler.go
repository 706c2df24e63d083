package handlers

import (
	"net/http"
	"strings"

	"health-assistant/internal/domain/dto"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/middleware"
)

type TranslationHandlers struct {
	Logger      *logger.Logger
	Translation Iservices.ITranslationService
	Sessions    Iservices.ISessionService
}

func NewTranslationHandlers(logger *logger.Logger, translation Iservices.ITranslationService, sessions Iservices.ISessionService) *TranslationHandlers {
	return &TranslationHandlers{Logger: logger, Translation: translation, Sessions: sessions}
}

func (th *TranslationHandlers) Translate(w http.ResponseWriter, r *http.Request) {
	var req dto.TranslateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"translatedText": th.Translation.Translate(r.Context(), req.Text, req.From, req.To),
	})
}

func (th *TranslationHandlers) BatchTranslate(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchTranslateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"messages": th.Translation.BatchTranslate(r.Context(), req.Messages, req.From, req.To),
	})
}

func (th *TranslationHandlers) DetectLanguage(w http.ResponseWriter, r *http.Request) {
	var req dto.DetectLanguageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"language": th.Translation.DetectLanguage(r.Context(), req.Text),
	})
}

// TranslateAndSpeak speaks through the session's player when sessionId is
// given, superseding whatever that session was saying.
func (th *TranslationHandlers) TranslateAndSpeak(w http.ResponseWriter, r *http.Request) {
	var req dto.TranslateAndSpeakRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var speaker Iservices.ISpeaker
	if id := strings.TrimSpace(req.SessionID); id != "" {
		s, err := th.Sessions.Speaker(r.Context(), id, middleware.UserFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, th.Logger, "translate and speak", err)
			return
		}
		speaker = s
	}

	writeJSON(w, http.StatusOK, th.Translation.TranslateAndSpeak(r.Context(), req.Text, req.From, req.To, speaker))
}
