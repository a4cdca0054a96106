package handler

import (
	"log/slog"
	"net/http"

	"github.com/auralis/auralis/internal/ctxkeys"
	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/service"
)

type AccountHandler struct {
	authService    *service.AuthService
	userService    *service.UserService
	profileService *service.ProfileService
}

func NewAccountHandler(authService *service.AuthService, userService *service.UserService, profileService *service.ProfileService) *AccountHandler {
	return &AccountHandler{
		authService:    authService,
		userService:    userService,
		profileService: profileService,
	}
}

type meResponse struct {
	User    *model.User    `json:"user"`
	Profile *model.Profile `json:"profile"`
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	user, err := h.userService.ByID(r.Context(), userID)
	if err != nil {
		handleError(w, r, err, "failed to load user", "user_id", userID)
		return
	}

	profile, err := h.profileService.ByUserID(r.Context(), userID)
	if err != nil {
		handleError(w, r, err, "failed to load profile", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, meResponse{User: user, Profile: profile})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, req.Name, req.Timezone)
	if err != nil {
		handleError(w, r, err, "failed to update profile", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "all password fields are required")
		return
	}

	err := h.userService.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		slog.Warn("password update failed", "error", err, "user_id", userID)
		handleError(w, r, err, "failed to update password", "user_id", userID)
		return
	}

	slog.Info("password updated", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	err := h.userService.DeleteAccount(r.Context(), userID)
	if err != nil {
		handleError(w, r, err, "account deletion failed", "user_id", userID)
		return
	}

	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
