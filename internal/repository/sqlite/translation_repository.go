package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// TranslationRepository handles translation history operations in SQLite
type TranslationRepository struct {
	db *database.SQLiteDB
}

// NewTranslationRepository creates a new translation history repository
func NewTranslationRepository(db *database.SQLiteDB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

const translationColumns = `id, user_id, japanese_text, english_translation, grammar_feedback, natural_suggestion, created_at`

// Create logs a translation and returns the stored row
func (r *TranslationRepository) Create(ctx context.Context, in domain.CreateTranslation) (*domain.TranslationEntry, error) {
	query := `
		INSERT INTO translation_history (user_id, japanese_text, english_translation, grammar_feedback, natural_suggestion)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := r.db.DB.ExecContext(ctx, query,
		in.UserID, in.JapaneseText, in.EnglishTranslation, in.GrammarFeedback, in.NaturalSuggestion)
	if err != nil {
		return nil, translateConstraintError(err, "translation entry already exists")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted translation id: %w", err)
	}

	entry, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("translation entry %d vanished after insert", id)
	}
	return entry, nil
}

// GetByID retrieves a translation entry by ID
func (r *TranslationRepository) GetByID(ctx context.Context, id int64) (*domain.TranslationEntry, error) {
	query := `SELECT ` + translationColumns + ` FROM translation_history WHERE id = ?`

	var entry domain.TranslationEntry
	err := r.db.DB.GetContext(ctx, &entry, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get translation entry: %w", err)
	}

	return &entry, nil
}

// ListByUserID lists a user's translation history, newest first
func (r *TranslationRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.TranslationEntry, error) {
	query := `
		SELECT ` + translationColumns + `
		FROM translation_history
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	entries := []domain.TranslationEntry{}
	err := r.db.DB.SelectContext(ctx, &entries, query,
		userID, normalizeLimit(limit, 50), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list translation history: %w", err)
	}

	return entries, nil
}

// Delete deletes a translation entry
func (r *TranslationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM translation_history WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete translation entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// Search matches the query as a case-insensitive substring of the source or
// target text, scoped to one user
func (r *TranslationRepository) Search(ctx context.Context, userID int64, query string) ([]domain.TranslationEntry, error) {
	pattern := likePattern(query)
	stmt := `
		SELECT ` + translationColumns + `
		FROM translation_history
		WHERE user_id = ?
		  AND (LOWER(japanese_text) LIKE LOWER(?) ESCAPE '\'
		    OR LOWER(english_translation) LIKE LOWER(?) ESCAPE '\')
		ORDER BY created_at DESC, id DESC
	`

	entries := []domain.TranslationEntry{}
	if err := r.db.DB.SelectContext(ctx, &entries, stmt, userID, pattern, pattern); err != nil {
		return nil, fmt.Errorf("failed to search translation history: %w", err)
	}

	return entries, nil
}

// Count returns the number of translation entries a user has
func (r *TranslationRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM translation_history WHERE user_id = ?`

	if err := r.db.DB.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count translation history: %w", err)
	}
	return count, nil
}

// DeleteOld removes all but the keepCount most recent entries for a user and
// returns the number of rows removed
func (r *TranslationRepository) DeleteOld(ctx context.Context, userID int64, keepCount int) (int64, error) {
	if keepCount < 0 {
		keepCount = 0
	}

	query := `
		DELETE FROM translation_history
		WHERE user_id = ?
		  AND id NOT IN (
			SELECT id FROM translation_history
			WHERE user_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		  )
	`

	res, err := r.db.DB.ExecContext(ctx, query, userID, userID, keepCount)
	if err != nil {
		return 0, fmt.Errorf("failed to prune translation history: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected, nil
}
