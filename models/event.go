package models

import "time"

// UserEventType names a user lifecycle event.
type UserEventType string

// Published user lifecycle events.
const (
	UserRegistered UserEventType = "user.registered"
	UserLoggedIn   UserEventType = "user.logged_in"
	UserLoggedOut  UserEventType = "user.logged_out"
)

// UserEvent is published to the event bus after a successful user flow.
type UserEvent struct {
	Type       UserEventType `json:"type"`
	UserID     string        `json:"user_id"`
	Username   string        `json:"username,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewUserEvent builds an event for user stamped with the current time.
func NewUserEvent(eventType UserEventType, user User) UserEvent {
	return UserEvent{
		Type:       eventType,
		UserID:     user.ID,
		Username:   user.Username,
		OccurredAt: time.Now().UTC(),
	}
}
