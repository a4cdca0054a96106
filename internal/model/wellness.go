package model

import (
	"time"
)

// WellnessEntry is a single mood, stress, sleep or social check-in.
type WellnessEntry struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Category  Category  `db:"category" json:"category"`
	Score     int       `db:"score" json:"score"`
	Hours     *float64  `db:"hours" json:"hours,omitempty"` // sleep only
	Tags      Tags      `db:"tags" json:"tags"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
