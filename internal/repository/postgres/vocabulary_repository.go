package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// VocabularyRepository handles vocabulary data operations in PostgreSQL
type VocabularyRepository struct {
	db *database.PostgresDB
}

// NewVocabularyRepository creates a new vocabulary repository
func NewVocabularyRepository(db *database.PostgresDB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

const vocabularyColumns = `id, user_id, japanese_word, english_translation, category, difficulty_level, notes, source, created_at, updated_at`

func scanVocabulary(row pgx.Row) (*domain.VocabularyWord, error) {
	var word domain.VocabularyWord
	err := row.Scan(
		&word.ID,
		&word.UserID,
		&word.JapaneseWord,
		&word.EnglishTranslation,
		&word.Category,
		&word.DifficultyLevel,
		&word.Notes,
		&word.Source,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func collectVocabulary(rows pgx.Rows) ([]domain.VocabularyWord, error) {
	defer rows.Close()

	words := []domain.VocabularyWord{}
	for rows.Next() {
		word, err := scanVocabulary(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, *word)
	}
	return words, rows.Err()
}

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
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + vocabularyColumns

	word, err := scanVocabulary(r.db.Pool.QueryRow(ctx, query,
		in.UserID, in.JapaneseWord, in.EnglishTranslation, category, difficulty, in.Notes, source))
	if err != nil {
		return nil, translateConstraintError(err, "vocabulary word already exists")
	}
	return word, nil
}

// GetByID retrieves a vocabulary word by ID
func (r *VocabularyRepository) GetByID(ctx context.Context, id int64) (*domain.VocabularyWord, error) {
	query := `SELECT ` + vocabularyColumns + ` FROM vocabulary WHERE id = $1`

	word, err := scanVocabulary(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vocabulary word: %w", err)
	}
	return word, nil
}

// ListByUserID lists a user's vocabulary, newest first
func (r *VocabularyRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.VocabularyWord, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query,
		userID, normalizeLimit(limit, 50), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary: %w", err)
	}
	return collectVocabulary(rows)
}

// ListByCategory lists a user's vocabulary within one category, newest first
func (r *VocabularyRepository) ListByCategory(ctx context.Context, userID int64, category string) ([]domain.VocabularyWord, error) {
	query := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE user_id = $1 AND category = $2
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary by category: %w", err)
	}
	return collectVocabulary(rows)
}

// Categories returns the user's distinct categories in alphabetical order
func (r *VocabularyRepository) Categories(ctx context.Context, userID int64) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM vocabulary
		WHERE user_id = $1
		ORDER BY category ASC
	`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update applies the supplied fields and returns the stored row
func (r *VocabularyRepository) Update(ctx context.Context, id int64, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error) {
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}

	query := `
		UPDATE vocabulary
		SET japanese_word = COALESCE($2, japanese_word),
		    english_translation = COALESCE($3, english_translation),
		    category = COALESCE($4, category),
		    difficulty_level = COALESCE($5, difficulty_level),
		    notes = COALESCE($6, notes),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + vocabularyColumns

	word, err := scanVocabulary(r.db.Pool.QueryRow(ctx, query,
		id, upd.JapaneseWord, upd.EnglishTranslation, upd.Category, upd.DifficultyLevel, upd.Notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateConstraintError(err, "vocabulary word conflict")
	}
	return word, nil
}

// Delete deletes a vocabulary word
func (r *VocabularyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vocabulary WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete vocabulary word: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Search matches the query as a case-insensitive substring of the word,
// translation, or notes, scoped to one user
func (r *VocabularyRepository) Search(ctx context.Context, userID int64, query string) ([]domain.VocabularyWord, error) {
	pattern := likePattern(query)
	stmt := `
		SELECT ` + vocabularyColumns + `
		FROM vocabulary
		WHERE user_id = $1
		  AND (japanese_word ILIKE $2 ESCAPE '\'
		    OR english_translation ILIKE $2 ESCAPE '\'
		    OR COALESCE(notes, '') ILIKE $2 ESCAPE '\')
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Pool.Query(ctx, stmt, userID, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search vocabulary: %w", err)
	}
	return collectVocabulary(rows)
}

// Count returns the number of vocabulary words a user has saved
func (r *VocabularyRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM vocabulary WHERE user_id = $1`

	if err := r.db.Pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count vocabulary: %w", err)
	}
	return count, nil
}
