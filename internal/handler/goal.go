package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/auralis/auralis/internal/ctxkeys"
	"github.com/auralis/auralis/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
	sweeper     *service.OverdueSweeper
}

func NewGoalHandler(goalService *service.GoalService, sweeper *service.OverdueSweeper) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		sweeper:     sweeper,
	}
}

type setGoalsRequest struct {
	Goals []service.GoalInput `json:"goals"`
}

type goalsResponse struct {
	Goals any `json:"goals"`
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.ActiveGoals(r.Context(), userID)
	if err != nil {
		handleError(w, r, err, "failed to list goals", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, goalsResponse{Goals: goals})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req setGoalsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goals, err := h.goalService.SetGoals(r.Context(), userID, req.Goals)
	if err != nil {
		handleError(w, r, err, "failed to create goals", "user_id", userID)
		return
	}

	slog.Info("weekly goals set", "user_id", userID, "count", len(goals))
	writeJSON(w, http.StatusCreated, goalsResponse{Goals: goals})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.DeleteGoal(r.Context(), userID, goalID)
	if err != nil {
		handleError(w, r, err, "failed to delete goal", "user_id", userID, "goal_id", goalID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GoalHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	weeks, ok := queryInt(r, "weeks")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "weeks must be a number", Field: "weeks"})
		return
	}

	goals, err := h.goalService.History(r.Context(), userID, weeks)
	if err != nil {
		handleError(w, r, err, "failed to load goal history", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, goalsResponse{Goals: goals})
}

func (h *GoalHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Overdue(r.Context(), userID)
	if err != nil {
		handleError(w, r, err, "failed to list overdue goals", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, goalsResponse{Goals: goals})
}

// CheckOverdue runs a sweep for all users now instead of waiting for the next tick.
func (h *GoalHandler) CheckOverdue(w http.ResponseWriter, r *http.Request) {
	result, err := h.sweeper.Sweep(r.Context(), time.Now())
	if err != nil {
		handleError(w, r, err, "manual overdue sweep failed", "user_id", ctxkeys.UserID(r.Context()))
		return
	}

	writeJSON(w, http.StatusOK, result)
}
