package handlers

import (
	"net/http"

	"health-assistant/internal/domain/dto"
	"health-assistant/internal/domain/entities"
	Iservices "health-assistant/internal/domain/interfaces/services"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/middleware"
)

type ProfileHandlers struct {
	Logger   *logger.Logger
	Profiles Iservices.IProfileService
}

func NewProfileHandlers(logger *logger.Logger, profiles Iservices.IProfileService) *ProfileHandlers {
	return &ProfileHandlers{Logger: logger, Profiles: profiles}
}

func (th *ProfileHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := th.Profiles.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, th.Logger, "register", err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (th *ProfileHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := th.Profiles.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, th.Logger, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (th *ProfileHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := th.Profiles.Get(r.Context(), middleware.UserFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, th.Logger, "get profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (th *ProfileHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := th.Profiles.Update(r.Context(), middleware.UserFromContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, th.Logger, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (th *ProfileHandlers) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req dto.LanguageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := th.Profiles.SetPreferredLanguage(r.Context(), middleware.UserFromContext(r.Context()), req.Language)
	if err != nil {
		handleServiceError(w, th.Logger, "set language", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Languages lists the supported language table.
func Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entities.SupportedLanguages)
}
