package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// ChatSessionRepository handles chat session data operations in PostgreSQL
type ChatSessionRepository struct {
	db *database.PostgresDB
}

// NewChatSessionRepository creates a new chat session repository
func NewChatSessionRepository(db *database.PostgresDB) *ChatSessionRepository {
	return &ChatSessionRepository{db: db}
}

const sessionColumns = `id, user_id, level, topic, created_at, updated_at`

func scanSession(row pgx.Row) (*domain.ChatSession, error) {
	var session domain.ChatSession
	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.Level,
		&session.Topic,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func collectSessions(rows pgx.Rows) ([]domain.ChatSession, error) {
	defer rows.Close()

	sessions := []domain.ChatSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

// Create creates a new chat session and returns the stored row
func (r *ChatSessionRepository) Create(ctx context.Context, in domain.CreateChatSession) (*domain.ChatSession, error) {
	query := `
		INSERT INTO chat_sessions (user_id, level, topic)
		VALUES ($1, $2, $3)
		RETURNING ` + sessionColumns

	session, err := scanSession(r.db.Pool.QueryRow(ctx, query, in.UserID, in.Level, in.Topic))
	if err != nil {
		return nil, translateConstraintError(err, "chat session already exists")
	}
	return session, nil
}

// GetByID retrieves a chat session by ID
func (r *ChatSessionRepository) GetByID(ctx context.Context, id int64) (*domain.ChatSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM chat_sessions WHERE id = $1`

	session, err := scanSession(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return session, nil
}

// ListByUserID lists a user's sessions, newest-created first
func (r *ChatSessionRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.ChatSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query,
		userID, normalizeLimit(limit, 50), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	return collectSessions(rows)
}

// ListRecent lists a user's sessions, most recently active first
func (r *ChatSessionRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.ChatSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, normalizeLimit(limit, 10))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent chat sessions: %w", err)
	}
	return collectSessions(rows)
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
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session messages: %w", err)
	}
	messages, err := collectMessages(rows)
	if err != nil {
		return nil, err
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
		SET level = COALESCE($2, level),
		    topic = COALESCE($3, topic),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + sessionColumns

	session, err := scanSession(r.db.Pool.QueryRow(ctx, query, id, upd.Level, upd.Topic))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateConstraintError(err, "chat session conflict")
	}
	return session, nil
}

// Touch refreshes a session's updated_at timestamp
func (r *ChatSessionRepository) Touch(ctx context.Context, id int64) error {
	query := `UPDATE chat_sessions SET updated_at = now() WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to touch chat session: %w", err)
	}
	return nil
}

// Delete deletes a chat session; its messages are removed by cascade
func (r *ChatSessionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM chat_sessions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete chat session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
