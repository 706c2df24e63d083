package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"health-assistant/internal/domain/interfaces/repository"
	"health-assistant/internal/infra/logger"
	"health-assistant/internal/infra/services"
	"health-assistant/internal/util"
)

type errorBody struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: http.StatusText(status), Code: status, Message: message})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// statusFor maps service and repository sentinels to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrEmptyInput),
		errors.Is(err, services.ErrUnsupportedLanguage),
		errors.Is(err, util.ErrInvalidDataURL):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrBusy),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrPrescriptionAlreadyLinked),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError writes the mapped status. Unmapped errors are logged and
// their detail kept out of the response.
func handleServiceError(w http.ResponseWriter, log *logger.Logger, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(fmt.Sprintf("%s failed: %v", op, err))
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
