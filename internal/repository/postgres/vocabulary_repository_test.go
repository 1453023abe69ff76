package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wataru0019/enconapp/internal/domain"
)

func TestVocabularyRepository_CreateAppliesDefaults(t *testing.T) {
	db := getTestDB(t)
	repo := NewVocabularyRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	word, err := repo.Create(ctx, domain.CreateVocabulary{
		UserID:             user.ID,
		JapaneseWord:       "ねこ",
		EnglishTranslation: "cat",
	})
	require.NoError(t, err)
	require.NotNil(t, word)
	assert.Equal(t, "general", word.Category)
	assert.Equal(t, domain.DifficultyBeginner, word.DifficultyLevel)
	assert.Equal(t, domain.SourceManual, word.Source)
}

func TestVocabularyRepository_SearchAndCategories(t *testing.T) {
	db := getTestDB(t)
	repo := NewVocabularyRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	_, err := repo.Create(ctx, domain.CreateVocabulary{
		UserID:             user.ID,
		JapaneseWord:       "とうきょう",
		EnglishTranslation: "Tokyo",
		Category:           "places",
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.CreateVocabulary{
		UserID:             user.ID,
		JapaneseWord:       "ねこ",
		EnglishTranslation: "cat",
		Category:           "animals",
	})
	require.NoError(t, err)

	results, err := repo.Search(ctx, user.ID, "tokyo")
	require.NoError(t, err)
	require.Len(t, results, 1, "search must be case-insensitive")
	assert.Equal(t, "とうきょう", results[0].JapaneseWord)

	categories, err := repo.Categories(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"animals", "places"}, categories)
}

func TestVocabularyRepository_PartialUpdate(t *testing.T) {
	db := getTestDB(t)
	repo := NewVocabularyRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	word, err := repo.Create(ctx, domain.CreateVocabulary{
		UserID:             user.ID,
		JapaneseWord:       "みず",
		EnglishTranslation: "water",
		Category:           "drinks",
	})
	require.NoError(t, err)

	difficulty := domain.DifficultyAdvanced
	updated, err := repo.Update(ctx, word.ID, domain.VocabularyUpdate{
		DifficultyLevel: &difficulty,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.DifficultyAdvanced, updated.DifficultyLevel)
	assert.Equal(t, "drinks", updated.Category, "untouched field keeps its value")
	assert.Equal(t, "みず", updated.JapaneseWord)
}
