package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/auralis/auralis/internal/model"
)

const (
	EventGoalCompleted = "goal.completed"
	EventGoalOverdue   = "goal.overdue"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// GoalEvent is the JSON payload published for every terminal transition.
type GoalEvent struct {
	Type       string         `json:"type"`
	GoalID     string         `json:"goalId"`
	UserID     string         `json:"userId"`
	Category   model.Category `json:"category"`
	Name       string         `json:"name"`
	Current    int            `json:"current"`
	Target     int            `json:"target"`
	WeekStart  time.Time      `json:"weekStart"`
	WeekEnd    time.Time      `json:"weekEnd"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// KafkaNotifier publishes one event per goal, keyed by user id so a user's
// events stay ordered within a partition.
type KafkaNotifier struct {
	writer messageWriter
	now    func() time.Time
}

func NewKafkaNotifier(writer messageWriter) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, now: time.Now}
}

// NewKafkaWriter builds the producer used by KafkaNotifier.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (n *KafkaNotifier) Name() string { return "kafka" }

func (n *KafkaNotifier) GoalCompleted(ctx context.Context, goal *model.Goal) error {
	occurred := n.now()
	if goal.CompletedAt != nil {
		occurred = *goal.CompletedAt
	}

	msg, err := n.message(EventGoalCompleted, goal, occurred)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, msg)
}

func (n *KafkaNotifier) GoalsOverdue(ctx context.Context, userID string, goals []*model.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(goals))
	for _, goal := range goals {
		occurred := n.now()
		if goal.OverdueAt != nil {
			occurred = *goal.OverdueAt
		}

		msg, err := n.message(EventGoalOverdue, goal, occurred)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return n.writer.WriteMessages(ctx, msgs...)
}

func (n *KafkaNotifier) message(eventType string, goal *model.Goal, occurred time.Time) (kafka.Message, error) {
	payload, err := json.Marshal(GoalEvent{
		Type:       eventType,
		GoalID:     goal.ID,
		UserID:     goal.UserID,
		Category:   goal.Category,
		Name:       goal.Name,
		Current:    goal.Current,
		Target:     goal.Target,
		WeekStart:  goal.WeekStart.UTC(),
		WeekEnd:    goal.WeekEnd.UTC(),
		OccurredAt: occurred.UTC(),
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	return kafka.Message{
		Key:   []byte(goal.UserID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}, nil
}
