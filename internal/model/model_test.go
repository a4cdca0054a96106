package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.Valid(), c)
		assert.NotEmpty(t, c.Emoji())
	}
	assert.False(t, Category("").Valid())
	assert.False(t, Category("Mood").Valid())
	assert.Equal(t, "🎯", Category("gardening").Emoji())
}

func TestCategory_HasEntries(t *testing.T) {
	assert.True(t, CategoryMood.HasEntries())
	assert.True(t, CategorySleep.HasEntries())
	assert.False(t, CategoryWater.HasEntries())
}

func TestGoalStatus_Terminal(t *testing.T) {
	assert.False(t, GoalStatusActive.Terminal())
	assert.True(t, GoalStatusCompleted.Terminal())
	assert.True(t, GoalStatusOverdue.Terminal())
}

func TestGoal_Progress(t *testing.T) {
	g := &Goal{Target: 3, Current: 1, Status: GoalStatusActive}
	assert.True(t, g.IsActive())
	assert.False(t, g.Reached())
	assert.Equal(t, 2, g.Remaining())

	g.Current = 5
	assert.True(t, g.Reached())
	assert.Equal(t, 0, g.Remaining())
}

func TestArchivedGoal_MarshalJSON(t *testing.T) {
	completedAt := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	a := ArchivedGoal{
		Goal: Goal{
			ID:          "g1",
			Name:        "Mood Tracking",
			Category:    CategoryMood,
			Target:      2,
			Current:     2,
			Status:      GoalStatusCompleted,
			CompletedAt: &completedAt,
		},
		ArchivedAt: completedAt,
	}

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "g1", out["id"])
	assert.Equal(t, "completed", out["status"])
	assert.Equal(t, true, out["isCompleted"])
	assert.Equal(t, false, out["isOverdue"])
	assert.Contains(t, out, "completedAt")
	assert.Contains(t, out, "archivedAt")
	assert.NotContains(t, out, "overdueAt")
}

func TestTags_ValueAndScan(t *testing.T) {
	v, err := Tags{"happy", "calm"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["happy","calm"]`, v)

	v, err = Tags(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var tags Tags
	require.NoError(t, tags.Scan([]byte(`["tired"]`)))
	assert.Equal(t, Tags{"tired"}, tags)

	require.NoError(t, tags.Scan(nil))
	assert.Equal(t, Tags{}, tags)

	assert.Error(t, tags.Scan(42))
	assert.Error(t, tags.Scan("not json"))
}

func TestProfile_Location(t *testing.T) {
	var p *Profile
	assert.Equal(t, time.UTC, p.Location(time.UTC))

	p = &Profile{Timezone: "Europe/Berlin"}
	assert.Equal(t, "Europe/Berlin", p.Location(time.UTC).String())

	p.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, p.Location(time.UTC))
}

func TestUser_HasPassword(t *testing.T) {
	u := &User{}
	assert.False(t, u.HasPassword())
	empty := ""
	u.PasswordHash = &empty
	assert.False(t, u.HasPassword())
	hash := "$2a$10$abc"
	u.PasswordHash = &hash
	assert.True(t, u.HasPassword())
}
