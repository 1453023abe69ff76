package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wataru0019/enconapp/internal/domain"
	"github.com/wataru0019/enconapp/internal/pkg/database"
)

// UserRepository handles user data operations in SQLite
type UserRepository struct {
	db *database.SQLiteDB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.SQLiteDB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user and returns the stored row
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	query := `INSERT INTO users (username, password_hash) VALUES (?, ?)`

	res, err := r.db.DB.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return nil, translateConstraintError(err, "username already exists")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted user id: %w", err)
	}

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d vanished after insert", id)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	var user domain.User
	err := r.db.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, created_at, updated_at
		FROM users
		WHERE username = ?
	`

	var user domain.User
	err := r.db.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return &user, nil
}

// Update applies the supplied fields and returns the stored row. An empty
// update performs no write.
func (r *UserRepository) Update(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}

	query := `
		UPDATE users
		SET username = COALESCE(?, username),
		    password_hash = COALESCE(?, password_hash),
		    updated_at = strftime('%Y-%m-%d %H:%M:%f', 'now')
		WHERE id = ?
	`

	res, err := r.db.DB.ExecContext(ctx, query, upd.Username, upd.PasswordHash, id)
	if err != nil {
		return nil, translateConstraintError(err, "username already exists")
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

// Delete deletes a user; dependent rows are removed by cascade
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.DB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

// UsernameExists checks whether a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`

	if err := r.db.DB.GetContext(ctx, &exists, query, username); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}
