package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wataru0019/enconapp/internal/config"
	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// getTestDB returns a database connection for integration tests.
// Skips the test if the database is not available.
func getTestDB(t *testing.T) *database.PostgresDB {
	t.Helper()

	if os.Getenv("POSTGRES_TEST_HOST") == "" {
		t.Skip("Skipping integration test: POSTGRES_TEST_HOST not set")
		return nil
	}

	cfg := config.PostgresConfig{
		Host:     os.Getenv("POSTGRES_TEST_HOST"),
		Port:     5432,
		User:     os.Getenv("POSTGRES_TEST_USER"),
		Password: os.Getenv("POSTGRES_TEST_PASS"),
		Database: os.Getenv("POSTGRES_TEST_DB"),
		SSLMode:  "disable",
		MaxConns: 5,
		MinConns: 1,
	}
	if cfg.User == "" {
		cfg.User = "postgres"
	}
	if cfg.Database == "" {
		cfg.Database = "test_enconapp"
	}

	db, err := database.NewPostgres(context.Background(), cfg)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to PostgreSQL: %v", err)
		return nil
	}

	t.Cleanup(db.Close)
	return db
}

// createTestUser inserts a user with a unique name and removes it (and its
// cascaded rows) when the test finishes
func createTestUser(t *testing.T, db *database.PostgresDB) *domain.User {
	t.Helper()
	ctx := context.Background()

	username := fmt.Sprintf("test_user_%d", time.Now().UnixNano())
	user, err := NewUserRepository(db).Create(ctx, username, "$2a$10$testhash")
	require.NoError(t, err)
	require.NotNil(t, user)

	t.Cleanup(func() {
		_, _ = db.Pool.Exec(ctx, "DELETE FROM users WHERE id = $1", user.ID)
	})
	return user
}

func strPtr(s string) *string { return &s }
