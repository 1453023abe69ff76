package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wataru0019/enconapp/internal/config"
	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/llm"
	apperrors "github.com/wataru0019/enconapp/internal/pkg/errors"
	"github.com/wataru0019/enconapp/internal/pkg/logger"
	"github.com/wataru0019/enconapp/internal/repository"
)

// TranslationService handles Japanese-to-English translation with feedback
// and the per-user translation history log
type TranslationService struct {
	cfg             *config.Config
	translationRepo repository.TranslationRepository
	completions     CompletionClient
}

// NewTranslationService creates a new translation service
func NewTranslationService(
	cfg *config.Config,
	translationRepo repository.TranslationRepository,
	completions CompletionClient,
) *TranslationService {
	return &TranslationService{
		cfg:             cfg,
		translationRepo: translationRepo,
		completions:     completions,
	}
}

// Translate sends Japanese text to the model, logs the result, and prunes
// the user's history down to the retention cap
func (s *TranslationService) Translate(ctx context.Context, userID int64, japaneseText string) (*domain.TranslationResult, error) {
	if strings.TrimSpace(japaneseText) == "" {
		return nil, apperrors.Validation("japaneseText is required")
	}

	prompt := fmt.Sprintf(translationPrompt, japaneseText)
	raw, err := s.completions.Complete(ctx, "", []llm.Message{
		{Role: llm.RoleUser, Content: prompt},
	})
	if err != nil {
		return nil, err
	}

	result, err := parseTranslationResult(raw)
	if err != nil {
		return nil, apperrors.Unavailable("failed to parse translation response").WithError(err)
	}

	// History logging is best-effort: a storage failure must not lose the
	// translation the user already paid a model call for.
	if _, err := s.translationRepo.Create(ctx, domain.CreateTranslation{
		UserID:             userID,
		JapaneseText:       japaneseText,
		EnglishTranslation: result.Translation,
		GrammarFeedback:    result.GrammarFeedback,
		NaturalSuggestion:  result.NaturalSuggestion,
	}); err != nil {
		logger.Warn("failed to log translation", zap.Int64("user_id", userID), zap.Error(err))
		return result, nil
	}

	retention := s.cfg.Translation.RetentionCount
	if retention <= 0 {
		retention = 100
	}
	if _, err := s.translationRepo.DeleteOld(ctx, userID, retention); err != nil {
		logger.Warn("failed to prune translation history", zap.Int64("user_id", userID), zap.Error(err))
	}

	return result, nil
}

// parseTranslationResult decodes the model's JSON reply, tolerating
// surrounding prose by extracting the outermost object
func parseTranslationResult(raw string) (*domain.TranslationResult, error) {
	var result domain.TranslationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("response is not JSON")
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &result); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	if result.Translation == "" {
		return nil, fmt.Errorf("response is missing the translation")
	}
	return &result, nil
}

// History lists a user's translation history, newest first
func (s *TranslationService) History(ctx context.Context, userID int64, limit, offset int) ([]domain.TranslationEntry, error) {
	entries, err := s.translationRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list translation history: %w", err)
	}
	return entries, nil
}

// SearchHistory matches a query against a user's logged translations
func (s *TranslationService) SearchHistory(ctx context.Context, userID int64, query string) ([]domain.TranslationEntry, error) {
	if query == "" {
		return nil, apperrors.Validation("search query is required")
	}

	entries, err := s.translationRepo.Search(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search translation history: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes one history entry, enforcing ownership
func (s *TranslationService) DeleteEntry(ctx context.Context, userID, entryID int64) error {
	entry, err := s.translationRepo.GetByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to get translation entry: %w", err)
	}
	if entry == nil || entry.UserID != userID {
		return apperrors.NotFound("translation entry")
	}

	if _, err := s.translationRepo.Delete(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete translation entry: %w", err)
	}
	return nil
}

// LookupWord asks the model for a dictionary entry for an English word
func (s *TranslationService) LookupWord(ctx context.Context, word string) (string, error) {
	if strings.TrimSpace(word) == "" {
		return "", apperrors.Validation("word is required")
	}

	reply, err := s.completions.Complete(ctx, dictionarySystemPrompt, []llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf(dictionaryUserPrompt, word)},
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}
