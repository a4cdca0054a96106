package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/auralis/auralis/internal/app"
	"github.com/auralis/auralis/internal/handler"
	"github.com/auralis/auralis/internal/middleware"
)

const apiPrefix = "/api/v1"

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService)
	account := handler.NewAccountHandler(app.AuthService, app.UserService, app.ProfileService)
	goal := handler.NewGoalHandler(app.GoalService, app.Sweeper)
	wellness := handler.NewWellnessHandler(app.WellnessService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST "+apiPrefix+"/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST "+apiPrefix+"/auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST "+apiPrefix+"/auth/logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	// Account
	mux.HandleFunc("GET "+apiPrefix+"/me", middleware.RequireAuth(account.Me))
	mux.HandleFunc("PUT "+apiPrefix+"/me/profile", middleware.RequireAuth(account.UpdateProfile))
	mux.HandleFunc("PUT "+apiPrefix+"/me/password", middleware.RequireAuth(account.ChangePassword))
	mux.HandleFunc("DELETE "+apiPrefix+"/me", middleware.RequireAuth(account.DeleteAccount))

	// Weekly goals
	mux.HandleFunc("GET "+apiPrefix+"/wellness/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST "+apiPrefix+"/wellness/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("DELETE "+apiPrefix+"/wellness/goals/{id}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("GET "+apiPrefix+"/wellness/goals/history", middleware.RequireAuth(goal.History))
	mux.HandleFunc("GET "+apiPrefix+"/wellness/goals/overdue", middleware.RequireAuth(goal.Overdue))
	mux.HandleFunc("POST "+apiPrefix+"/wellness/goals/check-overdue", middleware.RequireAdmin(app.UserService, goal.CheckOverdue))

	// Wellness entries and manual progress
	mux.HandleFunc("POST "+apiPrefix+"/wellness/progress", middleware.RequireAuth(wellness.LogProgress))
	mux.HandleFunc("POST "+apiPrefix+"/wellness/{category}", middleware.RequireAuth(wellness.CreateEntry))
	mux.HandleFunc("GET "+apiPrefix+"/wellness/{category}/history", middleware.RequireAuth(wellness.History))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Recover,
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
	)

	return handler
}
