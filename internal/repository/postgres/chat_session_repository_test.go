package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wataru0019/enconapp/internal/domain"
)

func TestChatSessionRepository_CreateGetWithMessages(t *testing.T) {
	db := getTestDB(t)
	sessionRepo := NewChatSessionRepository(db)
	messageRepo := NewMessageRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	session, err := sessionRepo.Create(ctx, domain.CreateChatSession{
		UserID: user.ID,
		Level:  domain.LevelIntermediate,
		Topic:  strPtr("travel"),
	})
	require.NoError(t, err)
	require.NotNil(t, session)

	stored, err := messageRepo.CreateBatch(ctx, []domain.CreateMessage{
		{SessionID: session.ID, Sender: domain.SenderUser, Message: "hi"},
		{SessionID: session.ID, Sender: domain.SenderAssistant, Message: "Hello! Ready to practice?"},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)

	got, err := sessionRepo.GetWithMessages(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.LevelIntermediate, got.Level)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "hi", got.Messages[0].Message)
	assert.Equal(t, domain.SenderAssistant, got.Messages[1].Sender)
}

func TestChatSessionRepository_ListRecentFollowsTouch(t *testing.T) {
	db := getTestDB(t)
	repo := NewChatSessionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	first, err := repo.Create(ctx, domain.CreateChatSession{UserID: user.ID, Level: domain.LevelBeginner})
	require.NoError(t, err)
	second, err := repo.Create(ctx, domain.CreateChatSession{UserID: user.ID, Level: domain.LevelBeginner})
	require.NoError(t, err)

	require.NoError(t, repo.Touch(ctx, first.ID))

	recent, err := repo.ListRecent(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, first.ID, recent[0].ID)
	assert.Equal(t, second.ID, recent[1].ID)
}

func TestChatSessionRepository_UpdateAndDelete(t *testing.T) {
	db := getTestDB(t)
	repo := NewChatSessionRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db)

	session, err := repo.Create(ctx, domain.CreateChatSession{
		UserID: user.ID,
		Level:  domain.LevelBeginner,
		Topic:  strPtr("food"),
	})
	require.NoError(t, err)

	level := domain.LevelAdvanced
	updated, err := repo.Update(ctx, session.ID, domain.ChatSessionUpdate{Level: &level})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.LevelAdvanced, updated.Level)
	require.NotNil(t, updated.Topic)
	assert.Equal(t, "food", *updated.Topic)

	removed, err := repo.Delete(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	gone, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
