package handler

import (
	"net/http"

	"github.com/auralis/auralis/internal/ctxkeys"
	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/service"
)

type WellnessHandler struct {
	wellnessService *service.WellnessService
}

func NewWellnessHandler(wellnessService *service.WellnessService) *WellnessHandler {
	return &WellnessHandler{
		wellnessService: wellnessService,
	}
}

// CreateEntry handles POST /wellness/{category} for mood, stress, sleep and social.
func (h *WellnessHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	category := model.Category(r.PathValue("category"))

	var in service.EntryInput
	if !decodeJSON(w, r, &in) {
		return
	}

	result, err := h.wellnessService.CreateEntry(r.Context(), userID, category, in)
	if err != nil {
		handleError(w, r, err, "failed to create wellness entry", "user_id", userID, "category", category)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

type entriesResponse struct {
	Entries []*model.WellnessEntry `json:"entries"`
}

func (h *WellnessHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	category := model.Category(r.PathValue("category"))

	days, ok := queryInt(r, "days")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "days must be a number", Field: "days"})
		return
	}

	entries, err := h.wellnessService.History(r.Context(), userID, category, days)
	if err != nil {
		handleError(w, r, err, "failed to load wellness history", "user_id", userID, "category", category)
		return
	}

	writeJSON(w, http.StatusOK, entriesResponse{Entries: entries})
}

type progressRequest struct {
	Category model.Category `json:"category"`
	Amount   *int           `json:"amount"`
}

// LogProgress handles POST /wellness/progress. A missing amount counts as one unit.
func (h *WellnessHandler) LogProgress(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req progressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	amount := 1
	if req.Amount != nil {
		amount = *req.Amount
	}

	result, err := h.wellnessService.LogProgress(r.Context(), userID, req.Category, amount)
	if err != nil {
		handleError(w, r, err, "failed to log progress", "user_id", userID, "category", req.Category)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
