package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/repository"
	"github.com/auralis/auralis/internal/validation"
	"github.com/auralis/auralis/internal/week"
)

const DefaultHistoryWeeks = 4

type GoalInput struct {
	Name     string         `json:"name"`
	Category model.Category `json:"category"`
	Target   int            `json:"target"`
	Current  int            `json:"current"`
	Unit     string         `json:"unit"`
}

type GoalService struct {
	goals           repository.GoalRepository
	history         repository.GoalHistoryRepository
	users           repository.UserRepository
	profiles        repository.ProfileRepository
	evaluator       *CompletionEvaluator
	defaultLocation *time.Location
	maxHistoryWeeks int
	now             func() time.Time
}

func NewGoalService(
	goals repository.GoalRepository,
	history repository.GoalHistoryRepository,
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	evaluator *CompletionEvaluator,
	defaultLocation *time.Location,
	maxHistoryWeeks int,
) *GoalService {
	if defaultLocation == nil {
		defaultLocation = time.UTC
	}
	if maxHistoryWeeks < 1 {
		maxHistoryWeeks = 52
	}

	return &GoalService{
		goals:           goals,
		history:         history,
		users:           users,
		profiles:        profiles,
		evaluator:       evaluator,
		defaultLocation: defaultLocation,
		maxHistoryWeeks: maxHistoryWeeks,
		now:             time.Now,
	}
}

// SetGoals creates goals for the user's current week. Every input is
// validated before anything is written and the batch is stored atomically.
func (s *GoalService) SetGoals(ctx context.Context, userID string, inputs []GoalInput) ([]*model.Goal, error) {
	if len(inputs) == 0 {
		return nil, invalid("goals", errors.New("at least one goal is required"))
	}

	for i, in := range inputs {
		err := validateGoalInput(in)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				verr.Field = fmt.Sprintf("goals[%d].%s", i, verr.Field)
			}
			return nil, err
		}
	}

	err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current := week.Of(now, s.location(ctx, userID)).UTC()

	goals := make([]*model.Goal, 0, len(inputs))
	for _, in := range inputs {
		goals = append(goals, &model.Goal{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      strings.TrimSpace(in.Name),
			Category:  in.Category,
			Target:    in.Target,
			Current:   in.Current,
			Unit:      strings.TrimSpace(in.Unit),
			Status:    model.GoalStatusActive,
			WeekStart: current.Start,
			WeekEnd:   current.End,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	err = s.goals.CreateMany(ctx, goals)
	if errors.Is(err, repository.ErrDuplicateGoal) {
		return nil, err
	}
	if err != nil {
		return nil, storageError("create goals", err)
	}

	// A goal may start out already at its target.
	for i, g := range goals {
		if !g.Reached() {
			continue
		}
		evaluation, err := s.evaluator.Evaluate(ctx, g)
		if err != nil {
			return nil, err
		}
		goals[i] = evaluation.Goal
	}

	return goals, nil
}

func validateGoalInput(in GoalInput) error {
	err := validation.ValidateGoalName(in.Name)
	if err != nil {
		return invalid("name", err)
	}
	err = validation.ValidateCategory(in.Category)
	if err != nil {
		return invalid("category", err)
	}
	err = validation.ValidateTarget(in.Target)
	if err != nil {
		return invalid("target", err)
	}
	err = validation.ValidateCurrent(in.Current)
	if err != nil {
		return invalid("current", err)
	}
	err = validation.ValidateUnit(in.Unit)
	if err != nil {
		return invalid("unit", err)
	}
	return nil
}

// ActiveGoals lists the goals of the week containing now.
func (s *GoalService) ActiveGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	goals, err := s.goals.Active(ctx, userID, s.now())
	if err != nil {
		return nil, storageError("list active goals", err)
	}
	return goals, nil
}

// History returns archived goals of the last weeks calendar weeks, the
// current one included, most recent week first. weeks <= 0 means the default.
func (s *GoalService) History(ctx context.Context, userID string, weeks int) ([]*model.ArchivedGoal, error) {
	if weeks <= 0 {
		weeks = DefaultHistoryWeeks
	}
	if weeks > s.maxHistoryWeeks {
		weeks = s.maxHistoryWeeks
	}

	current := week.Of(s.now(), s.location(ctx, userID))
	since := current.Shift(-(weeks - 1)).Start

	goals, err := s.history.Since(ctx, userID, since)
	if err != nil {
		return nil, storageError("load goal history", err)
	}
	return goals, nil
}

// Overdue returns every archived overdue goal, newest week first.
func (s *GoalService) Overdue(ctx context.Context, userID string) ([]*model.ArchivedGoal, error) {
	goals, err := s.history.ByStatus(ctx, userID, model.GoalStatusOverdue)
	if err != nil {
		return nil, storageError("load overdue goals", err)
	}
	return goals, nil
}

// DeleteGoal removes an active goal. Terminal goals live in history and cannot be deleted.
func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	err := s.goals.Delete(ctx, userID, goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return err
	}
	if err != nil {
		return storageError("delete goal", err)
	}
	return nil
}

func (s *GoalService) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return invalid("userId", ErrUnknownUser)
	}
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return storageError("look up user", err)
	}
	if !exists {
		return invalid("userId", ErrUnknownUser)
	}
	return nil
}

// location resolves the user's timezone, falling back to the server default.
func (s *GoalService) location(ctx context.Context, userID string) *time.Location {
	profile, err := s.profiles.ByUserID(ctx, userID)
	if err != nil {
		return s.defaultLocation
	}
	return profile.Location(s.defaultLocation)
}
