package model

// Category tags a goal and the wellness activity that advances it.
type Category string

const (
	CategoryMood       Category = "mood"
	CategoryStress     Category = "stress"
	CategorySleep      Category = "sleep"
	CategorySocial     Category = "social"
	CategoryExercise   Category = "exercise"
	CategoryMeditation Category = "meditation"
	CategoryWater      Category = "water"
	CategoryNutrition  Category = "nutrition"
	CategoryStudy      Category = "study"
)

var categories = []Category{
	CategoryMood,
	CategoryStress,
	CategorySleep,
	CategorySocial,
	CategoryExercise,
	CategoryMeditation,
	CategoryWater,
	CategoryNutrition,
	CategoryStudy,
}

// Categories lists every known category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// HasEntries reports whether the category has its own wellness entry type.
// Other categories only advance through manual progress.
func (c Category) HasEntries() bool {
	switch c {
	case CategoryMood, CategoryStress, CategorySleep, CategorySocial:
		return true
	}
	return false
}

// Emoji is used in notification subjects.
func (c Category) Emoji() string {
	switch c {
	case CategoryMood:
		return "😊"
	case CategoryStress:
		return "🧘"
	case CategorySleep:
		return "😴"
	case CategorySocial:
		return "👥"
	case CategoryExercise:
		return "💪"
	case CategoryMeditation:
		return "🧘‍♀️"
	case CategoryWater:
		return "💧"
	case CategoryNutrition:
		return "🥗"
	case CategoryStudy:
		return "📚"
	}
	return "🎯"
}
