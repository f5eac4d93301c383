package domain

import (
	"context"
	"time"
)

// User represents a registered user account.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
}

// AuthService defines signup and login operations.
type AuthService interface {
	SignUp(ctx context.Context, email, password, username string) (*User, error)
	// Login returns a signed bearer token for the user on success.
	Login(ctx context.Context, email, password string) (string, *User, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int, email string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a bearer token and returns the user ID it carries.
type TokenVerifier interface {
	Verify(token string) (int, error)
}

// PasswordHasher abstracts salted password hashing.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (string, error)
	Compare(hash, salt, password string) error
}
