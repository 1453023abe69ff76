package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// MessageRepository handles message data operations in PostgreSQL
type MessageRepository struct {
	db *database.PostgresDB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *database.PostgresDB) *MessageRepository {
	return &MessageRepository{db: db}
}

const messageColumns = `id, session_id, sender, message, created_at`

func scanMessage(row pgx.Row) (*domain.Message, error) {
	var msg domain.Message
	err := row.Scan(
		&msg.ID,
		&msg.SessionID,
		&msg.Sender,
		&msg.Message,
		&msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func collectMessages(rows pgx.Rows) ([]domain.Message, error) {
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, *msg)
	}
	return messages, rows.Err()
}

// Create creates a new message and returns the stored row
func (r *MessageRepository) Create(ctx context.Context, in domain.CreateMessage) (*domain.Message, error) {
	query := `
		INSERT INTO messages (session_id, sender, message)
		VALUES ($1, $2, $3)
		RETURNING ` + messageColumns

	msg, err := scanMessage(r.db.Pool.QueryRow(ctx, query, in.SessionID, in.Sender, in.Message))
	if err != nil {
		return nil, translateConstraintError(err, "message already exists")
	}
	return msg, nil
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`

	msg, err := scanMessage(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return msg, nil
}

// ListBySessionID lists a session's messages in chronological order
func (r *MessageRepository) ListBySessionID(ctx context.Context, sessionID int64) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return collectMessages(rows)
}

// ListRecentBySessionID returns the newest `limit` messages of a session in
// chronological order. The query fetches newest-first, then the slice is
// reversed so callers always receive oldest-first.
func (r *MessageRepository) ListRecentBySessionID(ctx context.Context, sessionID int64, limit int) ([]domain.Message, error) {
	query := `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Pool.Query(ctx, query, sessionID, normalizeLimit(limit, 50))
	if err != nil {
		return nil, fmt.Errorf("failed to list recent messages: %w", err)
	}
	messages, err := collectMessages(rows)
	if err != nil {
		return nil, err
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

	messages := make([]domain.Message, 0, len(ins))
	err := database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO messages (session_id, sender, message)
			VALUES ($1, $2, $3)
			RETURNING ` + messageColumns

		for _, in := range ins {
			msg, err := scanMessage(tx.QueryRow(ctx, query, in.SessionID, in.Sender, in.Message))
			if err != nil {
				return translateConstraintError(err, "message already exists")
			}
			messages = append(messages, *msg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Delete deletes a message
func (r *MessageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete message: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteBySessionID deletes all messages of a session and returns the count
func (r *MessageRepository) DeleteBySessionID(ctx context.Context, sessionID int64) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM messages WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete session messages: %w", err)
	}
	return tag.RowsAffected(), nil
}
