package notify

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/auralis/auralis/internal/model"
)

func categoryTitle(c model.Category) string {
	return cases.Title(language.English).String(string(c))
}

func goalCompletedTemplate(name string, goal *model.Goal, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("🎉 Goal Completed: %s!", goal.Name)
	body := fmt.Sprintf(`Congratulations %s!

You've completed your wellness goal: "%s"

%s Progress: %d/%d %s
Category: %s

Keep up the great work! Your commitment to wellness is inspiring.

View your wellness dashboard: %s

Best,
The %s Team`, name, goal.Name, goal.Category.Emoji(), goal.Current, goal.Target, goal.Unit, categoryTitle(goal.Category), dashboardURL, appName)

	return subject, body
}

func goalsOverdueTemplate(name string, goals []*model.Goal, goalsURL, appName string) (string, string) {
	plural := ""
	if len(goals) > 1 {
		plural = "s"
	}
	subject := fmt.Sprintf("⏰ Wellness Goals Update - %d Goal%s Need Attention", len(goals), plural)

	var list strings.Builder
	for _, g := range goals {
		fmt.Fprintf(&list, "%s %s (%s): %d/%d %s, %d short\n", g.Category.Emoji(), g.Name, categoryTitle(g.Category), g.Current, g.Target, g.Unit, g.Remaining())
	}

	body := fmt.Sprintf(`Hi %s,

Your weekly wellness goals have ended, and we wanted to check in with you.

Goals that need attention:
%s
Don't worry! Every journey has its ups and downs. What matters is that you keep moving forward.

Set new goals for this week: %s

Remember: Progress, not perfection!

Best,
The %s Team`, name, list.String(), goalsURL, appName)

	return subject, body
}
