package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// ChatSessionRepository handles chat session data operations in SQLite
type ChatSessionRepository struct {
	db *database.SQLiteDB
}

// NewChatSessionRepository creates a new chat session repository
func NewChatSessionRepository(db *database.SQLiteDB) *ChatSessionRepository {
	return &ChatSessionRepository{db: db}
}

const sessionColumns = `id, user_id, level, topic, created_at, updated_at`

// Create creates a new chat session and returns the stored row
func (r *ChatSessionRepository) Create(ctx context.Context, in domain.CreateChatSession) (*domain.ChatSession, error) {
	query := `INSERT INTO chat_sessions (user_id, level, topic) VALUES (?, ?, ?)`

	res, err := r.db.DB.ExecContext(ctx, query, in.UserID, in.Level, in.Topic)
	if err != nil {
		return nil, translateConstraintError(err, "chat session already exists")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted session id: %w", err)
	}

	session, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("chat session %d vanished after insert", id)
	}
	return session, nil
}

// GetByID retrieves a chat session by ID
func (r *ChatSessionRepository) GetByID(ctx context.Context, id int64) (*domain.ChatSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM chat_sessions WHERE id = ?`

	var session domain.ChatSession
	err := r.db.DB.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}

	return &session, nil
}

// ListByUserID lists a user's sessions, newest-created first
func (r *ChatSessionRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.ChatSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM chat_sessions
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	sessions := []domain.ChatSession{}
	err := r.db.DB.SelectContext(ctx, &sessions, query,
		userID, normalizeLimit(limit, 50), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}

	return sessions, nil
}

// ListRecent lists a user's sessions, most recently active first
func (r *ChatSessionRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.ChatSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM chat_sessions
		WHERE user_id = ?
		ORDER BY updated_at DESC, id DESC
		LIMIT ?
	`

	sessions := []domain.ChatSession{}
	err := r.db.DB.SelectContext(ctx, &sessions, query, userID, normalizeLimit(limit, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent chat sessions: %w", err)
	}

	return sessions, nil
}

// GetWithMessages retrieves a session together with its messages oldest-first
func (r *ChatSessionRepository) GetWithMessages(ctx context.Context, id int64) (*domain.ChatSessionWithMessages, error) {
	session, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	query := `
		SELECT id, session_id, sender, message, created_at
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC
	`

	messages := []domain.Message{}
	if err := r.db.DB.SelectContext(ctx, &messages, query, id); err != nil {
		return nil, fmt.Errorf("failed to load session messages: %w", err)
	}

	return &domain.ChatSessionWithMessages{
		ChatSession: *session,
		Messages:    messages,
	}, nil
}

// Update applies the supplied fields and returns the stored row
func (r *ChatSessionRepository) Update(ctx context.Context, id int64, upd domain.ChatSessionUpdate) (*domain.ChatSession, error) {
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}

	query := `
		UPDATE chat_sessions
		SET level = COALESCE(?, level),
		    topic = COALESCE(?, topic),
		    updated_at = strftime('%Y-%m-%d %H:%M:%f', 'now')
		WHERE id = ?
	`

	res, err := r.db.DB.ExecContext(ctx, query, upd.Level, upd.Topic, id)
	if err != nil {
		return nil, translateConstraintError(err, "chat session conflict")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Touch refreshes a session's updated_at timestamp
func (r *ChatSessionRepository) Touch(ctx context.Context, id int64) error {
	query := `
		UPDATE chat_sessions
		SET updated_at = strftime('%Y-%m-%d %H:%M:%f', 'now')
		WHERE id = ?
	`

	if _, err := r.db.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to touch chat session: %w", err)
	}
	return nil
}

// Delete deletes a chat session; its messages are removed by cascade
func (r *ChatSessionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete chat session: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}
