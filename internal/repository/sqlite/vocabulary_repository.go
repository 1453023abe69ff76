package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// VocabularyRepository handles vocabulary data operations in SQLite
type VocabularyRepository struct {
	db *database.SQLiteDB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *database.SQLiteDB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

const vocabularyColumns = `id, user_id, japanese_word, english_translation, category, difficulty_level, notes, source, created_at, updated_at`

// Create saves a vocabulary word and returns the stored row. Zero-value
// category, difficulty, and source fall back to the column defaults.
func (r *VocabularyRepository) Create(ctx context.Context, in domain.CreateVocabulary) (*domain.VocabularyWord, error) {
	category := in.Category
	if category == "" {
		category = "general"
	}
	difficulty := in.DifficultyLevel
	if difficulty == "" {
		difficulty = domain.DifficultyBeginner
	}
	source := in.Source
	if source == "" {
		source = domain.SourceManual
	}

	query := `
		INSERT INTO vocabulary (user_id, japanese_word, english_translation, category, difficulty_level, notes, source)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.DB.ExecContext(ctx, query,
		in.UserID, in.JapaneseWord, in.EnglishTranslation, category, difficulty, in.Notes, source)
	if err != nil {
		return nil, translateConstraintError(err, "vocabulary word already exists")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted vocabulary id: %w", err)
	}

	word, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, fmt.Errorf("vocabulary word %d vanished after insert", id)
	}
	return word, nil
}

// GetByID retrieves a vocabulary word by ID
func (r *VocabularyRepository) GetByID(ctx context.Context, id int64) (*domain.VocabularyWord, error) {
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE id = ?`

	var word domain.VocabularyWord
	err := r.db.DB.GetContext(ctx, &word, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vocabulary word: %w", err)
	}

	return &word, nil
}

// ListByUserID lists a user's vocabulary, newest first
func (r *VocabularyRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.VocabularyWord, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	words := []domain.VocabularyWord{}
	err := r.db.DB.SelectContext(ctx, &words, query,
		userID, normalizeLimit(limit, 50), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary: %w", err)
	}

	return words, nil
}

// ListByCategory lists a user's vocabulary within one category, newest first
func (r *VocabularyRepository) ListByCategory(ctx context.Context, userID int64, category string) ([]domain.VocabularyWord, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE user_id = ? AND category = ?
		ORDER BY created_at DESC, id DESC
	`

	words := []domain.VocabularyWord{}
	if err := r.db.DB.SelectContext(ctx, &words, query, userID, category); err != nil {
		return nil, fmt.Errorf("failed to list vocabulary by category: %w", err)
	}

	return words, nil
}

// Categories returns the user's distinct categories in alphabetical order
func (r *VocabularyRepository) Categories(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM vocabulary
		WHERE user_id = ?
		ORDER BY category ASC
	`

	categories := []string{}
	if err := r.db.DB.SelectContext(ctx, &categories, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}

// Update applies the supplied fields and returns the stored row
func (r *VocabularyRepository) Update(ctx context.Context, id int64, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error) {
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}

	query := `
		UPDATE vocabulary
		SET japanese_word = COALESCE(?, japanese_word),
		    english_translation = COALESCE(?, english_translation),
		    category = COALESCE(?, category),
		    difficulty_level = COALESCE(?, difficulty_level),
		    notes = COALESCE(?, notes),
		    updated_at = strftime('%Y-%m-%d %H:%M:%f', 'now')
		WHERE id = ?
	`

	res, err := r.db.DB.ExecContext(ctx, query,
		upd.JapaneseWord, upd.EnglishTranslation, upd.Category, upd.DifficultyLevel, upd.Notes, id)
	if err != nil {
		return nil, translateConstraintError(err, "vocabulary word conflict")
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

// Delete deletes a vocabulary word
func (r *VocabularyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM vocabulary WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete vocabulary word: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// Search matches the query as a case-insensitive substring of the word,
// translation, or notes, scoped to one user
func (r *VocabularyRepository) Search(ctx context.Context, userID int64, query string) ([]domain.VocabularyWord, error) {
	pattern := likePattern(query)
	stmt := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE user_id = ?
		  AND (LOWER(japanese_word) LIKE LOWER(?) ESCAPE '\'
		    OR LOWER(english_translation) LIKE LOWER(?) ESCAPE '\'
		    OR LOWER(COALESCE(notes, '')) LIKE LOWER(?) ESCAPE '\')
		ORDER BY created_at DESC, id DESC
	`

	words := []domain.VocabularyWord{}
	if err := r.db.DB.SelectContext(ctx, &words, stmt, userID, pattern, pattern, pattern); err != nil {
		return nil, fmt.Errorf("failed to search vocabulary: %w", err)
	}

	return words, nil
}

// Count returns the number of vocabulary words a user has saved
func (r *VocabularyRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM vocabulary WHERE user_id = ?`

	if err := r.db.DB.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count vocabulary: %w", err)
	}
	return count, nil
}
