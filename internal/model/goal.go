package model

import (
	"encoding/json"
	"time"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusOverdue   GoalStatus = "overdue"
)

// Terminal reports whether no further transition is possible.
func (s GoalStatus) Terminal() bool {
	return s == GoalStatusCompleted || s == GoalStatusOverdue
}

// Goal is one user's target for a category during a single calendar week.
// WeekStart and WeekEnd are inclusive bounds stored in UTC.
type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Name        string     `db:"name" json:"name"`
	Category    Category   `db:"category" json:"category"`
	Target      int        `db:"target" json:"target"`
	Current     int        `db:"current" json:"current"`
	Unit        string     `db:"unit" json:"unit"`
	Status      GoalStatus `db:"status" json:"status"`
	WeekStart   time.Time  `db:"week_start" json:"weekStart"`
	WeekEnd     time.Time  `db:"week_end" json:"weekEnd"`
	CompletedAt *time.Time `db:"completed_at" json:"completedAt,omitempty"`
	OverdueAt   *time.Time `db:"overdue_at" json:"overdueAt,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

func (g *Goal) IsActive() bool {
	return !g.Status.Terminal()
}

// Reached reports whether the goal has accumulated enough progress to complete.
func (g *Goal) Reached() bool {
	return g.Current >= g.Target
}

// Remaining is the number of units still missing, never negative.
func (g *Goal) Remaining() int {
	if g.Current >= g.Target {
		return 0
	}
	return g.Target - g.Current
}

// ArchivedGoal is a terminal goal as stored in the history table.
type ArchivedGoal struct {
	Goal
	ArchivedAt time.Time `db:"archived_at" json:"archivedAt"`
}

// MarshalJSON adds the isCompleted/isOverdue flags the web client reads.
func (a ArchivedGoal) MarshalJSON() ([]byte, error) {
	type archived ArchivedGoal
	return json.Marshal(struct {
		archived
		IsCompleted bool `json:"isCompleted"`
		IsOverdue   bool `json:"isOverdue"`
	}{
		archived:    archived(a),
		IsCompleted: a.Status == GoalStatusCompleted,
		IsOverdue:   a.Status == GoalStatusOverdue,
	})
}
