package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// MessageRepository handles message data operations in SQLite
type MessageRepository struct {
	db *database.SQLiteDB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *database.SQLiteDB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, session_id, sender, message, created_at`

// Create creates a new message and returns the stored row
func (r *MessageRepository) Create(ctx context.Context, in domain.CreateMessage) (*domain.Message, error) {
	query := `INSERT INTO messages (session_id, sender, message) VALUES (?, ?, ?)`

	res, err := r.db.DB.ExecContext(ctx, query, in.SessionID, in.Sender, in.Message)
	if err != nil {
		return nil, translateConstraintError(err, "message already exists")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted message id: %w", err)
	}

	msg, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fmt.Errorf("message %d vanished after insert", id)
	}
	return msg, nil
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = ?`

	var msg domain.Message
	err := r.db.DB.GetContext(ctx, &msg, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	return &msg, nil
}

// ListBySessionID lists a session's messages in chronological order
func (r *MessageRepository) ListBySessionID(ctx context.Context, sessionID int64) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at ASC, id ASC
	`

	messages := []domain.Message{}
	if err := r.db.DB.SelectContext(ctx, &messages, query, sessionID); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// ListRecentBySessionID returns the newest `limit` messages of a session in
// chronological order. The query fetches newest-first, then the slice is
// reversed so callers always receive oldest-first.
func (r *MessageRepository) ListRecentBySessionID(ctx context.Context, sessionID int64, limit int) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE session_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	messages := []domain.Message{}
	err := r.db.DB.SelectContext(ctx, &messages, query, sessionID, normalizeLimit(limit, 50))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// CreateBatch inserts all messages in one transaction and returns the stored
// rows in input order. Any failure rolls back the whole batch.
func (r *MessageRepository) CreateBatch(ctx context.Context, ins []domain.CreateMessage) ([]domain.Message, error) {
	if len(ins) == 0 {
		return []domain.Message{}, nil
	}

	ids := make([]int64, 0, len(ins))
	err := r.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		query := `INSERT INTO messages (session_id, sender, message) VALUES (?, ?, ?)`
		for _, in := range ins {
			res, err := tx.ExecContext(ctx, query, in.SessionID, in.Sender, in.Message)
			if err != nil {
				return translateConstraintError(err, "message already exists")
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read inserted message id: %w", err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		msg, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if msg == nil {
			return nil, fmt.Errorf("message %d vanished after insert", id)
		}
		messages = append(messages, *msg)
	}
	return messages, nil
}

// Delete deletes a message
func (r *MessageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteBySessionID deletes all messages of a session and returns the count
func (r *MessageRepository) DeleteBySessionID(ctx context.Context, sessionID int64) (int64, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete session messages: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
