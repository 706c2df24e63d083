package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"health-assistant/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// RecoveryMiddleware turns a handler panic into a logged 500 with a JSON body.
func RecoveryMiddleware(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(fmt.Sprintf("Recovered from panic: %v", rec), logrus.Fields{
						"path":  r.URL.Path,
						"stack": string(debug.Stack()),
					})
					writeError(w, http.StatusInternalServerError, "internal error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error":   http.StatusText(status),
		"code":    status,
		"message": message,
	})
}
