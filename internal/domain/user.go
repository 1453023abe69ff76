package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents an account in the system. It is the root of ownership for
// chat sessions, vocabulary words, and translation history.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserUpdate carries a partial update; nil fields are left untouched
type UserUpdate struct {
	Username     *string `json:"username,omitempty"`
	PasswordHash *string `json:"-"`
}

// Empty reports whether the update carries no fields
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.PasswordHash == nil
}

// RegisterInput represents input for registration
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput represents input for login
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResult represents the result of an authentication attempt
type AuthResult struct {
	User      *User     `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// JWTClaims represents JWT token claims
type JWTClaims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
