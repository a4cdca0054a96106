package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/auralis/auralis/internal/repository"
	"github.com/auralis/auralis/internal/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter. Missing means 0.
func queryInt(r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// handleError maps service errors to status codes. Anything unexpected is
// logged at error level and reported with a generic message.
func handleError(w http.ResponseWriter, r *http.Request, err error, msg string, args ...any) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Err.Error(), Field: verr.Field})
	case errors.Is(err, service.ErrDuplicateGoal):
		writeError(w, http.StatusConflict, "an active goal for this category already exists this week")
	case errors.Is(err, service.ErrEmailAlreadyExists):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, service.ErrInvalidCurrentPassword):
		writeError(w, http.StatusUnauthorized, "current password is incorrect")
	case errors.Is(err, service.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "goal not found")
	case errors.Is(err, repository.ErrUserNotFound), errors.Is(err, repository.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	default:
		slog.Error(msg, append([]any{"error", err, "path", r.URL.Path}, args...)...)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
