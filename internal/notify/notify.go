// Package notify delivers goal lifecycle events to users and downstream systems.
//
// Notifiers are called after a transition has committed. Their failures are
// logged and counted but never undo or fail the transition.
package notify

import (
	"context"
	"log/slog"

	"github.com/auralis/auralis/internal/model"
	"github.com/auralis/auralis/internal/observability"
)

type Notifier interface {
	GoalCompleted(ctx context.Context, goal *model.Goal) error
	// GoalsOverdue is called once per user and sweep with every goal that
	// became overdue in that sweep.
	GoalsOverdue(ctx context.Context, userID string, goals []*model.Goal) error
}

// Named lets Fanout label failures per channel.
type Named interface {
	Name() string
}

// Fanout calls every notifier in order. A failing notifier does not stop the others.
type Fanout []Notifier

func (f Fanout) GoalCompleted(ctx context.Context, goal *model.Goal) error {
	for _, n := range f {
		err := n.GoalCompleted(ctx, goal)
		if err != nil {
			channel := channelName(n)
			observability.RecordNotificationFailure(channel)
			slog.Warn("goal completed notification failed", "error", err, "channel", channel, "goal_id", goal.ID, "user_id", goal.UserID)
		}
	}
	return nil
}

func (f Fanout) GoalsOverdue(ctx context.Context, userID string, goals []*model.Goal) error {
	for _, n := range f {
		err := n.GoalsOverdue(ctx, userID, goals)
		if err != nil {
			channel := channelName(n)
			observability.RecordNotificationFailure(channel)
			slog.Warn("goals overdue notification failed", "error", err, "channel", channel, "user_id", userID, "count", len(goals))
		}
	}
	return nil
}

func channelName(n Notifier) string {
	if named, ok := n.(Named); ok {
		return named.Name()
	}
	return "unknown"
}

// Log writes events to the default logger. It is the only channel when
// neither email nor Kafka is configured.
type Log struct{}

func (Log) Name() string { return "log" }

func (Log) GoalCompleted(ctx context.Context, goal *model.Goal) error {
	slog.InfoContext(ctx, "goal completed",
		"user_id", goal.UserID,
		"goal_id", goal.ID,
		"category", goal.Category,
		"current", goal.Current,
		"target", goal.Target,
	)
	return nil
}

func (Log) GoalsOverdue(ctx context.Context, userID string, goals []*model.Goal) error {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	slog.InfoContext(ctx, "goals overdue", "user_id", userID, "goal_ids", ids)
	return nil
}
