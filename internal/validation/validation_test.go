package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/auralis/auralis/internal/model"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "ana@example.com", false},
		{"empty", "", true},
		{"missing at", "ana.example.com", true},
		{"display name", "Ana <ana@example.com>", true},
		{"too long", strings.Repeat("a", 250) + "@x.io", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("calm-river-42"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
	assert.Error(t, ValidatePassword("MyPassword99"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ana"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("n", 101)))
}

func TestGoalValidators(t *testing.T) {
	assert.NoError(t, ValidateGoalName("Sleep 8 hours"))
	assert.Error(t, ValidateGoalName(""))
	assert.Error(t, ValidateGoalName(strings.Repeat("g", 101)))

	assert.NoError(t, ValidateCategory(model.CategoryWater))
	assert.ErrorIs(t, ValidateCategory("yoga"), ErrInvalidCategory)

	assert.NoError(t, ValidateTarget(1))
	assert.ErrorIs(t, ValidateTarget(0), ErrInvalidTarget)

	assert.NoError(t, ValidateCurrent(0))
	assert.Error(t, ValidateCurrent(-1))

	assert.NoError(t, ValidateUnit("glasses"))
	assert.Error(t, ValidateUnit(strings.Repeat("u", 33)))

	assert.NoError(t, ValidateAmount(3))
	assert.ErrorIs(t, ValidateAmount(0), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(-2), ErrInvalidAmount)

	assert.NoError(t, ValidateTimezone(""))
	assert.NoError(t, ValidateTimezone("UTC"))
	assert.Error(t, ValidateTimezone("Mars/Olympus"))
}

func TestWellnessValidators(t *testing.T) {
	assert.NoError(t, ValidateEntryCategory(model.CategoryMood))
	assert.ErrorIs(t, ValidateEntryCategory(model.CategoryWater), ErrNoEntryType)

	for score := 1; score <= 5; score++ {
		assert.NoError(t, ValidateScore(score))
	}
	assert.Error(t, ValidateScore(0))
	assert.Error(t, ValidateScore(6))

	hours := 7.5
	assert.NoError(t, ValidateSleepHours(&hours))
	assert.Error(t, ValidateSleepHours(nil))
	tooMany := 25.0
	assert.Error(t, ValidateSleepHours(&tooMany))

	assert.NoError(t, ValidateNotes(strings.Repeat("n", 500)))
	assert.Error(t, ValidateNotes(strings.Repeat("n", 501)))

	assert.NoError(t, ValidateTags([]string{"tired", "hopeful"}))
	assert.NoError(t, ValidateTags(nil))
	assert.Error(t, ValidateTags([]string{" "}))
	assert.Error(t, ValidateTags([]string{strings.Repeat("t", 51)}))
}
