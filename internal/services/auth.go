package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/tasknest/tasknest-backend/internal/apperror"
	"github.com/tasknest/tasknest-backend/internal/models"
	"github.com/tasknest/tasknest-backend/internal/repository"
)

const (
	// MaxNameLength bounds usernames, titles and category names, matching their VARCHAR(255) columns
	MaxNameLength = 255
	// MaxPasswordBytes is the most bcrypt will hash
	MaxPasswordBytes = 72
)

// invalidCredentials is shared by every login failure so callers cannot tell which check failed
const invalidCredentials = "Invalid username or password"

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer issues session tokens
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// AuthService registers users and logs them in
type AuthService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account. A taken username is a Conflict.
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.Validation("Username is required")
	}
	if utf8.RuneCountInString(username) > MaxNameLength {
		return nil, apperror.Validation("Username must be at most 255 characters")
	}
	if strings.TrimSpace(password) == "" {
		return nil, apperror.Validation("Password is required")
	}
	if len(password) > MaxPasswordBytes {
		return nil, apperror.Validation("Password must be at most 72 bytes")
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user, err := s.users.Create(ctx, username, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, apperror.Conflict("Username already exists")
		}
		if errors.Is(err, repository.ErrInvalidValue) {
			return nil, apperror.Validation("Invalid username")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// Login checks the credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperror.Validation("Username is required")
	}
	if strings.TrimSpace(password) == "" {
		return "", apperror.Validation("Password is required")
	}
	if len(password) > MaxPasswordBytes {
		return "", apperror.Unauthorized(invalidCredentials)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperror.Unauthorized(invalidCredentials)
		}
		return "", apperror.Internal(err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", apperror.Internal(err)
	}
	if !ok {
		return "", apperror.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}
