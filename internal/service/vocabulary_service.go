package service

import (
	"context"
	"fmt"

	"github.com/wataru0019/enconapp/internal/domain"
	apperrors "github.com/wataru0019/enconapp/internal/pkg/errors"
	"github.com/wataru0019/enconapp/internal/repository"
	"github.com/wataru0019/enconapp/internal/validator"
)

// VocabularyService handles the personal vocabulary list
type VocabularyService struct {
	vocabRepo repository.VocabularyRepository
}

// NewVocabularyService creates a new vocabulary service
func NewVocabularyService(vocabRepo repository.VocabularyRepository) *VocabularyService {
	return &VocabularyService{vocabRepo: vocabRepo}
}

// AddWord saves a word to a user's vocabulary list
func (s *VocabularyService) AddWord(ctx context.Context, in domain.CreateVocabulary) (*domain.VocabularyWord, error) {
	if err := validator.Validate(&in); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	word, err := s.vocabRepo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to save vocabulary word: %w", err)
	}
	return word, nil
}

// GetWord returns a word, enforcing ownership
func (s *VocabularyService) GetWord(ctx context.Context, userID, wordID int64) (*domain.VocabularyWord, error) {
	word, err := s.vocabRepo.GetByID(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary word: %w", err)
	}
	if word == nil || word.UserID != userID {
		return nil, apperrors.NotFound("vocabulary word")
	}
	return word, nil
}

// ListWords lists a user's vocabulary, optionally scoped to a category
func (s *VocabularyService) ListWords(ctx context.Context, userID int64, category string, limit, offset int) ([]domain.VocabularyWord, error) {
	var (
		words []domain.VocabularyWord
		err   error
	)
	if category != "" {
		words, err = s.vocabRepo.ListByCategory(ctx, userID, category)
	} else {
		words, err = s.vocabRepo.ListByUserID(ctx, userID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list vocabulary: %w", err)
	}
	return words, nil
}

// ListCategories returns the user's distinct categories in alphabetical order
func (s *VocabularyService) ListCategories(ctx context.Context, userID int64) ([]string, error) {
	categories, err := s.vocabRepo.Categories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateWord applies a partial update, enforcing ownership
func (s *VocabularyService) UpdateWord(ctx context.Context, userID, wordID int64, upd domain.VocabularyUpdate) (*domain.VocabularyWord, error) {
	if upd.DifficultyLevel != nil && !upd.DifficultyLevel.Valid() {
		return nil, apperrors.Validation("difficultyLevel must be one of: beginner intermediate advanced")
	}

	word, err := s.vocabRepo.GetByID(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vocabulary word: %w", err)
	}
	if word == nil || word.UserID != userID {
		return nil, apperrors.NotFound("vocabulary word")
	}

	updated, err := s.vocabRepo.Update(ctx, wordID, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update vocabulary word: %w", err)
	}
	if updated == nil {
		return nil, apperrors.NotFound("vocabulary word")
	}
	return updated, nil
}

// DeleteWord removes a word, enforcing ownership
func (s *VocabularyService) DeleteWord(ctx context.Context, userID, wordID int64) error {
	word, err := s.vocabRepo.GetByID(ctx, wordID)
	if err != nil {
		return fmt.Errorf("failed to get vocabulary word: %w", err)
	}
	if word == nil || word.UserID != userID {
		return apperrors.NotFound("vocabulary word")
	}

	if _, err := s.vocabRepo.Delete(ctx, wordID); err != nil {
		return fmt.Errorf("failed to delete vocabulary word: %w", err)
	}
	return nil
}

// SearchWords matches a query against a user's words, translations, and notes
func (s *VocabularyService) SearchWords(ctx context.Context, userID int64, query string) ([]domain.VocabularyWord, error) {
	if query == "" {
		return nil, apperrors.Validation("search query is required")
	}

	words, err := s.vocabRepo.Search(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search vocabulary: %w", err)
	}
	return words, nil
}

// CountWords returns the size of a user's vocabulary list
func (s *VocabularyService) CountWords(ctx context.Context, userID int64) (int64, error) {
	count, err := s.vocabRepo.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count vocabulary: %w", err)
	}
	return count, nil
}
