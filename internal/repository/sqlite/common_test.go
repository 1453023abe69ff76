package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wataru0019/enconapp/internal/config"
	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// getTestDB opens a fresh database file in a per-test temp directory. A file
// is used instead of :memory: so every connection sees the same database.
func getTestDB(t *testing.T) *database.SQLiteDB {
	t.Helper()

	db, err := database.NewSQLite(config.SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// createTestUser inserts a user row for use as a foreign key target
func createTestUser(t *testing.T, db *database.SQLiteDB, username string) *domain.User {
	t.Helper()

	user, err := NewUserRepository(db).Create(context.Background(), username, "$2a$10$testhash")
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

// createTestSession inserts a chat session for a user
func createTestSession(t *testing.T, db *database.SQLiteDB, userID int64, level domain.Level) *domain.ChatSession {
	t.Helper()

	session, err := NewChatSessionRepository(db).Create(context.Background(), domain.CreateChatSession{
		UserID: userID,
		Level:  level,
	})
	require.NoError(t, err)
	require.NotNil(t, session)
	return session
}

func strPtr(s string) *string { return &s }
