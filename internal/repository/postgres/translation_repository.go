package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// TranslationRepository handles translation history operations in PostgreSQL
type TranslationRepository struct {
	db *database.PostgresDB
}

// NewTranslationRepository creates a new translation history repository
func NewTranslationRepository(db *database.PostgresDB) *TranslationRepository {
	return &TranslationRepository{db: db}
}

const translationColumns = `id, user_id, japanese_text, english_translation, grammar_feedback, natural_suggestion, created_at`

func scanTranslation(row pgx.Row) (*domain.TranslationEntry, error) {
	var entry domain.TranslationEntry
	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.JapaneseText,
		&entry.EnglishTranslation,
		&entry.GrammarFeedback,
		&entry.NaturalSuggestion,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func collectTranslations(rows pgx.Rows) ([]domain.TranslationEntry, error) {
	defer rows.Close()

	entries := []domain.TranslationEntry{}
	for rows.Next() {
		entry, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Create logs a translation and returns the stored row
func (r *TranslationRepository) Create(ctx context.Context, in domain.CreateTranslation) (*domain.TranslationEntry, error) {
	query := `
		INSERT INTO translation_history (user_id, japanese_text, english_translation, grammar_feedback, natural_suggestion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + translationColumns

	entry, err := scanTranslation(r.db.Pool.QueryRow(ctx, query,
		in.UserID, in.JapaneseText, in.EnglishTranslation, in.GrammarFeedback, in.NaturalSuggestion))
	if err != nil {
		return nil, translateConstraintError(err, "translation entry already exists")
	}
	return entry, nil
}

// GetByID retrieves a translation entry by ID
func (r *TranslationRepository) GetByID(ctx context.Context, id int64) (*domain.TranslationEntry, error) {
	query := `SELECT ` + translationColumns + ` FROM translation_history WHERE id = $1`

	entry, err := scanTranslation(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get translation entry: %w", err)
	}
	return entry, nil
}

// ListByUserID lists a user's translation history, newest first
func (r *TranslationRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.TranslationEntry, error) {
	query := `
		SELECT ` + translationColumns + `
		FROM translation_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query,
		userID, normalizeLimit(limit, 50), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list translation history: %w", err)
	}
	return collectTranslations(rows)
}

// Delete deletes a translation entry
func (r *TranslationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM translation_history WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete translation entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Search matches the query as a case-insensitive substring of the source or
// target text, scoped to one user
func (r *TranslationRepository) Search(ctx context.Context, userID int64, query string) ([]domain.TranslationEntry, error) {
	pattern := likePattern(query)
	stmt := `
		SELECT ` + translationColumns + `
		FROM translation_history
		WHERE user_id = $1
		  AND (japanese_text ILIKE $2 ESCAPE '\'
		    OR english_translation ILIKE $2 ESCAPE '\')
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Pool.Query(ctx, stmt, userID, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search translation history: %w", err)
	}
	return collectTranslations(rows)
}

// Count returns the number of translation entries a user has
func (r *TranslationRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM translation_history WHERE user_id = $1`

	if err := r.db.Pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
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
		WHERE user_id = $1
		  AND id NOT IN (
			SELECT id FROM translation_history
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		  )
	`

	tag, err := r.db.Pool.Exec(ctx, query, userID, keepCount)
	if err != nil {
		return 0, fmt.Errorf("failed to prune translation history: %w", err)
	}
	return tag.RowsAffected(), nil
}
