package dto

import "time"

// Payloads published to the event topic. Key is the event name,
// value is the JSON-encoded payload.

const (
	EventUserRegistered = "user.registered"
	EventGoalCompleted  = "goal.completed"
)

type UserRegisteredEvent struct {
	EventID    string    `json:"event_id"`
	UserID     uint      `json:"user_id"`
	Username   string    `json:"username"`
	OccurredAt time.Time `json:"occurred_at"`
}

type GoalCompletedEvent struct {
	EventID    string    `json:"event_id"`
	GoalID     uint      `json:"goal_id"`
	UserID     uint      `json:"user_id"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurred_at"`
}
