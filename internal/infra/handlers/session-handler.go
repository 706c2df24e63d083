package handlers

import (
	"net/http"

	"health-assistant/internal/domain/dto"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/middleware"
	"health-assistant/internal/util"

	"github.com/gorilla/mux"
)

type SessionHandlers struct {
	Logger   *logger.Logger
	Sessions Iservices.ISessionService
}

func NewSessionHandlers(logger *logger.Logger, sessions Iservices.ISessionService) *SessionHandlers {
	return &SessionHandlers{Logger: logger, Sessions: sessions}
}

func sessionID(r *http.Request) string { return mux.Vars(r)["id"] }

func (th *SessionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	view, err := th.Sessions.Create(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "create session", err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (th *SessionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	view, err := th.Sessions.Get(r.Context(), sessionID(r), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "get session", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SubmitMessage decodes base64 audio and image payloads and runs one analysis.
// Reasoning failures still answer 200; the apology is in the transcript.
func (th *SessionHandlers) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	audio, audioMIME, err := util.DecodeDataURL(req.AudioData, req.AudioType)
	if err != nil {
		writeError(w, http.StatusBadRequest, "audioData: "+err.Error())
		return
	}
	image, imageMIME, err := util.DecodeDataURL(req.ImageData, "image/jpeg")
	if err != nil {
		writeError(w, http.StatusBadRequest, "imageData: "+err.Error())
		return
	}

	res, err := th.Sessions.Submit(r.Context(), sessionID(r), middleware.UserFromContext(r.Context()), dto.Submission{
		Text:          req.Text,
		Audio:         audio,
		AudioMIMEType: audioMIME,
		Image:         image,
		ImageMIMEType: imageMIME,
	})
	if err != nil {
		handleServiceError(w, th.Logger, "submit message", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (th *SessionHandlers) StageImage(w http.ResponseWriter, r *http.Request) {
	var req dto.StageImageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := middleware.UserFromContext(r.Context())
	if err := th.Sessions.StageImage(r.Context(), sessionID(r), user, req.ImageData); err != nil {
		handleServiceError(w, th.Logger, "stage image", err)
		return
	}
	th.writeView(w, r, user)
}

func (th *SessionHandlers) ClearImage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if err := th.Sessions.ClearStagedImage(r.Context(), sessionID(r), user); err != nil {
		handleServiceError(w, th.Logger, "clear image", err)
		return
	}
	th.writeView(w, r, user)
}

func (th *SessionHandlers) Clear(w http.ResponseWriter, r *http.Request) {
	view, err := th.Sessions.Clear(r.Context(), sessionID(r), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "clear session", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (th *SessionHandlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req dto.LanguageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := middleware.UserFromContext(r.Context())
	if err := th.Sessions.SetLanguage(r.Context(), sessionID(r), user, req.Language); err != nil {
		handleServiceError(w, th.Logger, "set session language", err)
		return
	}
	th.writeView(w, r, user)
}

// Speech answers 204 when nothing is being spoken.
func (th *SessionHandlers) Speech(w http.ResponseWriter, r *http.Request) {
	clip, ok, err := th.Sessions.Speech(r.Context(), sessionID(r), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "get speech", err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, clip)
}

func (th *SessionHandlers) writeView(w http.ResponseWriter, r *http.Request, user string) {
	view, err := th.Sessions.Get(r.Context(), sessionID(r), user)
	if err != nil {
		handleServiceError(w, th.Logger, "get session", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
