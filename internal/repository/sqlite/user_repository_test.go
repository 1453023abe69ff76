package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wataru0019/enconapp/internal/domain"
	apperrors "github.com/wataru0019/enconapp/internal/pkg/errors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := getTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.Create(ctx, "alice", "$2a$10$hash")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero())
	assert.False(t, user.UpdatedAt.IsZero())

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserRepository_GetMissingReturnsNil(t *testing.T) {
	db := getTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.GetByID(ctx, 99999)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_DuplicateUsernameConflicts(t *testing.T) {
	db := getTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, "bob", "hash1")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "bob", "hash2")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUserRepository_UsernameExists(t *testing.T) {
	db := getTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	exists, err := repo.UsernameExists(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Create(ctx, "carol", "hash")
	require.NoError(t, err)

	exists, err = repo.UsernameExists(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_PartialUpdate(t *testing.T) {
	db := getTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.Create(ctx, "dave", "oldhash")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	updated, err := repo.Update(ctx, user.ID, domain.UserUpdate{
		PasswordHash: strPtr("newhash"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "dave", updated.Username, "untouched field must keep its value")
	assert.Equal(t, "newhash", updated.PasswordHash)
	assert.True(t, updated.UpdatedAt.After(user.UpdatedAt), "updated_at must increase")
	assert.Equal(t, user.CreatedAt, updated.CreatedAt)
}

func TestUserRepository_EmptyUpdateIsNoOp(t *testing.T) {
	db := getTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.Create(ctx, "erin", "hash")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	same, err := repo.Update(ctx, user.ID, domain.UserUpdate{})
	require.NoError(t, err)
	require.NotNil(t, same)
	assert.Equal(t, user.UpdatedAt, same.UpdatedAt, "empty update must not bump updated_at")
}

func TestUserRepository_UpdateMissingReturnsNil(t *testing.T) {
	db := getTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.Update(context.Background(), 99999, domain.UserUpdate{
		Username: strPtr("ghost"),
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_Delete(t *testing.T) {
	db := getTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user, err := repo.Create(ctx, "frank", "hash")
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	removed, err = repo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete must report nothing removed")
}

func TestUserRepository_DeleteCascades(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()

	userRepo := NewUserRepository(db)
	sessionRepo := NewChatSessionRepository(db)
	messageRepo := NewMessageRepository(db)
	vocabRepo := NewVocabularyRepository(db)
	translationRepo := NewTranslationRepository(db)

	user := createTestUser(t, db, "grace")

	for i := 0; i < 3; i++ {
		session := createTestSession(t, db, user.ID, domain.LevelBeginner)
		for j := 0; j < 4; j++ {
			_, err := messageRepo.Create(ctx, domain.CreateMessage{
				SessionID: session.ID,
				Sender:    domain.SenderUser,
				Message:   "hello",
			})
			require.NoError(t, err)
		}
	}
	_, err := vocabRepo.Create(ctx, domain.CreateVocabulary{
		UserID:             user.ID,
		JapaneseWord:       "ねこ",
		EnglishTranslation: "cat",
	})
	require.NoError(t, err)
	_, err = translationRepo.Create(ctx, domain.CreateTranslation{
		UserID:             user.ID,
		JapaneseText:       "こんにちは",
		EnglishTranslation: "hello",
	})
	require.NoError(t, err)

	removed, err := userRepo.Delete(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, removed)

	sessions, err := sessionRepo.ListByUserID(ctx, user.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	vocabCount, err := vocabRepo.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, vocabCount)

	translationCount, err := translationRepo.Count(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, translationCount)

	var orphanMessages int64
	err = db.DB.GetContext(ctx, &orphanMessages, `SELECT COUNT(*) FROM messages`)
	require.NoError(t, err)
	assert.Zero(t, orphanMessages, "messages must be removed transitively")
}
