package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/auralis/auralis/internal/model"
)

type userFinder interface {
	ByID(ctx context.Context, id string) (*model.User, error)
}

type profileFinder interface {
	ByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

type emailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailNotifier sends goal emails through Resend. In development it only logs them.
type EmailNotifier struct {
	sender    emailSender
	users     userFinder
	profiles  profileFinder
	fromEmail string
	isDev     bool
	appURL    string
	appName   string
}

func NewEmailNotifier(apiKey, fromEmail, appURL, appName string, isDev bool, users userFinder, profiles profileFinder) *EmailNotifier {
	var sender emailSender
	if apiKey != "" && !isDev {
		sender = resend.NewClient(apiKey).Emails
	}

	return &EmailNotifier{
		sender:    sender,
		users:     users,
		profiles:  profiles,
		fromEmail: fromEmail,
		isDev:     isDev,
		appURL:    appURL,
		appName:   appName,
	}
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) GoalCompleted(ctx context.Context, goal *model.Goal) error {
	email, name, err := n.recipient(ctx, goal.UserID)
	if err != nil {
		return err
	}

	subject, body := goalCompletedTemplate(name, goal, n.appURL+"/dashboard", n.appName)
	return n.send(ctx, "goal_completed", email, subject, body)
}

func (n *EmailNotifier) GoalsOverdue(ctx context.Context, userID string, goals []*model.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	email, name, err := n.recipient(ctx, userID)
	if err != nil {
		return err
	}

	subject, body := goalsOverdueTemplate(name, goals, n.appURL+"/wellness", n.appName)
	return n.send(ctx, "goals_overdue", email, subject, body)
}

func (n *EmailNotifier) recipient(ctx context.Context, userID string) (string, string, error) {
	user, err := n.users.ByID(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to load recipient: %w", err)
	}

	name := "there"
	profile, err := n.profiles.ByUserID(ctx, userID)
	if err == nil && profile.Name != "" {
		name = profile.Name
	}

	return user.Email, name, nil
}

func (n *EmailNotifier) send(ctx context.Context, kind, to, subject, body string) error {
	if n.isDev {
		slog.Info("email sent (dev mode)", "type", kind, "to", to, "subject", subject)
		return nil
	}

	if n.sender == nil {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY)")
	}

	params := &resend.SendEmailRequest{
		From:    n.fromEmail,
		To:      []string{to},
		Subject: subject,
		Text:    body,
	}

	_, err := n.sender.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", kind, "to", to)
	}
	return err
}
