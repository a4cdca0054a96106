package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/service"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Name, req.Timezone)
	if err != nil {
		handleError(w, r, err, "failed to register user")
		return
	}

	slog.Info("user registered", "user_id", user.ID)
	h.issueToken(w, r, user, http.StatusCreated)
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("password login failed", "error", err)
		handleError(w, r, err, "failed to log in")
		return
	}

	slog.Info("user logged in with password", "user_id", user.ID)
	h.issueToken(w, r, user, http.StatusOK)
}

func (h *authHandler) issueToken(w http.ResponseWriter, r *http.Request, user *model.User, status int) {
	token, expiry, err := h.authService.GenerateJWT(user)
	if err != nil {
		handleError(w, r, err, "failed to generate JWT", "user_id", user.ID)
		return
	}

	h.authService.SetJWTCookie(w, token, expiry)
	writeJSON(w, status, tokenResponse{Token: token, ExpiresAt: expiry, User: user})
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
