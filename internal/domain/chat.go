package domain

import "time"

// ChatSession represents one conversation practice session. It owns an
// ordered sequence of messages.
type ChatSession struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Level     Level     `json:"level" db:"level"`
	Topic     *string   `json:"topic,omitempty" db:"topic"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateChatSession represents input for creating a chat session
type CreateChatSession struct {
	UserID int64   `json:"userId" validate:"required"`
	Level  Level   `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Topic  *string `json:"topic,omitempty"`
}

// ChatSessionUpdate carries a partial update; nil fields are left untouched
type ChatSessionUpdate struct {
	Level *Level  `json:"level,omitempty"`
	Topic *string `json:"topic,omitempty"`
}

// Empty reports whether the update carries no fields
func (u ChatSessionUpdate) Empty() bool {
	return u.Level == nil && u.Topic == nil
}

// ChatSessionWithMessages is a session together with its messages in
// creation order (oldest first).
type ChatSessionWithMessages struct {
	ChatSession
	Messages []Message `json:"messages"`
}

// Message is one conversation turn. Messages are immutable once created.
type Message struct {
	ID        int64     `json:"id" db:"id"`
	SessionID int64     `json:"sessionId" db:"session_id"`
	Sender    Sender    `json:"sender" db:"sender"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CreateMessage represents input for creating a message
type CreateMessage struct {
	SessionID int64  `json:"sessionId" validate:"required"`
	Sender    Sender `json:"sender" validate:"required,oneof=user assistant"`
	Message   string `json:"message" validate:"required"`
}
