// Package repository defines the storage contracts shared by both database
// backends. Lookups that find nothing return a nil record and a nil error;
// absence is a valid outcome, not a failure. Constraint and enumeration
// violations come back as typed errors from internal/pkg/errors.
package repository

import (
	"context"

	"github.com/wataru0019/enconapp/internal/domain"
)

// UserRepository handles user accounts
type UserRepository interface {
	// Create inserts a user and reads back the stored row. A duplicate
	// username surfaces as a conflict error via the storage-layer unique
	// constraint.
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update applies only the supplied fields and refreshes updated_at.
	// An empty update reads back the current row without writing.
	Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error)
	// Delete removes the user and, by cascade, their sessions, messages,
	// vocabulary, and translation history. Returns true iff a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// ChatSessionRepository handles conversation sessions
type ChatSessionRepository interface {
	Create(ctx context.Context, in domain.CreateChatSession) (*domain.ChatSession, error)
	GetByID(ctx context.Context, id int64) (*domain.ChatSession, error)
	// ListByUserID returns sessions ordered newest-created first.
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.ChatSession, error)
	// ListRecent returns sessions ordered newest-updated first.
	ListRecent(ctx context.Context, userID int64, limit int) ([]domain.ChatSession, error)
	// GetWithMessages returns the session plus its messages oldest-first,
	// or absence if the session does not exist.
	GetWithMessages(ctx context.Context, id int64) (*domain.ChatSessionWithMessages, error)
	Update(ctx context.Context, id int64, upd domain.ChatSessionUpdate) (*domain.ChatSession, error)
	// Touch refreshes updated_at, moving the session to the front of the
	// recency ordering.
	Touch(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// MessageRepository handles conversation turns
type MessageRepository interface {
	Create(ctx context.Context, in domain.CreateMessage) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	// ListBySessionID returns messages in chronological order.
	ListBySessionID(ctx context.Context, sessionID int64) ([]domain.Message, error)
	// ListRecentBySessionID bounds the result to the newest `limit`
	// messages, returned in chronological order.
	ListRecentBySessionID(ctx context.Context, sessionID int64, limit int) ([]domain.Message, error)
	// CreateBatch inserts all messages atomically: either every message is
	// stored or none is.
	CreateBatch(ctx context.Context, ins []domain.CreateMessage) ([]domain.Message, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// DeleteBySessionID removes every message of a session and returns the
	// number of rows removed.
	DeleteBySessionID(ctx context.Context, sessionID int64) (int64, error)
}

// VocabularyRepository handles the personal vocabulary list
type VocabularyRepository interface {
	Create(ctx context.Context, in domain.CreateVocabulary) (*domain.VocabularyWord, error)
	GetByID(ctx context.Context, id int64) (*domain.VocabularyWord, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.VocabularyWord, error)
	ListByCategory(ctx context.Context, userID int64, category string) ([]domain.VocabularyWord, error)
	// Categories returns the user's distinct categories in alphabetical order.
	Categories(ctx context.Context, userID int64) ([]string, error)
	Update(ctx context.Context, id int64, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// Search matches the query as a case-insensitive substring of the word,
	// translation, or notes.
	Search(ctx context.Context, userID int64, query string) ([]domain.VocabularyWord, error)
	Count(ctx context.Context, userID int64) (int64, error)
}

// TranslationRepository handles the translation history log
type TranslationRepository interface {
	Create(ctx context.Context, in domain.CreateTranslation) (*domain.TranslationEntry, error)
	GetByID(ctx context.Context, id int64) (*domain.TranslationEntry, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.TranslationEntry, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// Search matches the query as a case-insensitive substring of the source
	// or target text.
	Search(ctx context.Context, userID int64, query string) ([]domain.TranslationEntry, error)
	Count(ctx context.Context, userID int64) (int64, error)
	// DeleteOld removes all but the keepCount most recently created entries
	// for the user and returns the number of rows removed.
	DeleteOld(ctx context.Context, userID int64, keepCount int) (int64, error)
}
