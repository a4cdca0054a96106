package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/repository"
	"github.com/auralis/auralis/internal/validation"
)

const (
	DefaultEntryHistoryDays = 30
	maxEntryHistoryDays     = 365
)

type progressReporter interface {
	ReportProgress(ctx context.Context, userID string, category model.Category, amount int) (*ProgressResult, error)
}

type EntryInput struct {
	Score int      `json:"score"`
	Hours *float64 `json:"hours,omitempty"`
	Tags  []string `json:"tags"`
	Notes string   `json:"notes"`
}

type EntryResult struct {
	Entry          *model.WellnessEntry `json:"entry"`
	CompletedGoals []*model.Goal        `json:"completedGoals"`
}

type WellnessService struct {
	entries  repository.WellnessRepository
	users    repository.UserRepository
	reporter progressReporter
	now      func() time.Time
}

func NewWellnessService(entries repository.WellnessRepository, users repository.UserRepository, reporter progressReporter) *WellnessService {
	return &WellnessService{
		entries:  entries,
		users:    users,
		reporter: reporter,
		now:      time.Now,
	}
}

// CreateEntry stores a check-in and then reports one unit of progress for
// its category. Progress failures are logged and never fail the entry.
func (s *WellnessService) CreateEntry(ctx context.Context, userID string, category model.Category, in EntryInput) (*EntryResult, error) {
	err := validateEntryInput(category, in)
	if err != nil {
		return nil, err
	}

	if userID == "" {
		return nil, invalid("userId", ErrUnknownUser)
	}
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, storageError("look up user", err)
	}
	if !exists {
		return nil, invalid("userId", ErrUnknownUser)
	}

	tags := make(model.Tags, 0, len(in.Tags))
	for _, tag := range in.Tags {
		tags = append(tags, strings.TrimSpace(tag))
	}

	entry := &model.WellnessEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Category:  category,
		Score:     in.Score,
		Tags:      tags,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: s.now(),
	}
	if category == model.CategorySleep {
		entry.Hours = in.Hours
	}

	err = s.entries.Create(ctx, entry)
	if err != nil {
		return nil, storageError("create wellness entry", err)
	}

	result := &EntryResult{Entry: entry, CompletedGoals: []*model.Goal{}}

	progress, err := s.reporter.ReportProgress(ctx, userID, category, 1)
	if err != nil {
		slog.Warn("failed to report goal progress", "error", err, "user_id", userID, "category", category, "entry_id", entry.ID)
		return result, nil
	}
	result.CompletedGoals = progress.CompletedGoals

	return result, nil
}

func validateEntryInput(category model.Category, in EntryInput) error {
	err := validation.ValidateEntryCategory(category)
	if err != nil {
		return invalid("category", err)
	}
	err = validation.ValidateScore(in.Score)
	if err != nil {
		return invalid("score", err)
	}
	if category == model.CategorySleep {
		err = validation.ValidateSleepHours(in.Hours)
		if err != nil {
			return invalid("hours", err)
		}
	}
	err = validation.ValidateTags(in.Tags)
	if err != nil {
		return invalid("tags", err)
	}
	err = validation.ValidateNotes(in.Notes)
	if err != nil {
		return invalid("notes", err)
	}
	return nil
}

// History lists the user's entries of the last days days, newest first.
func (s *WellnessService) History(ctx context.Context, userID string, category model.Category, days int) ([]*model.WellnessEntry, error) {
	err := validation.ValidateEntryCategory(category)
	if err != nil {
		return nil, invalid("category", err)
	}
	if days <= 0 {
		days = DefaultEntryHistoryDays
	}
	if days > maxEntryHistoryDays {
		days = maxEntryHistoryDays
	}

	since := s.now().AddDate(0, 0, -days)
	entries, err := s.entries.Entries(ctx, userID, category, since)
	if err != nil {
		return nil, storageError("list wellness entries", err)
	}
	return entries, nil
}

// LogProgress records manual progress, for categories without their own
// entry form. Unlike CreateEntry it surfaces every error.
func (s *WellnessService) LogProgress(ctx context.Context, userID string, category model.Category, amount int) (*ProgressResult, error) {
	result, err := s.reporter.ReportProgress(ctx, userID, category, amount)
	if err != nil {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			slog.Error("failed to log progress", "error", err, "user_id", userID, "category", category)
		}
		return nil, err
	}
	return result, nil
}
