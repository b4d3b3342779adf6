package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/preptrack/preptrack-go/internal/crypto"
	"github.com/preptrack/preptrack-go/internal/model"
	"github.com/preptrack/preptrack-go/internal/repository"
)

// UserStore persists user credentials.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(userID int64) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		now:    time.Now,
	}
}

// Register creates a new account and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, req model.CredentialsRequest) (model.TokenResponse, error) {
	if err := validateCredentials(req); err != nil {
		return model.TokenResponse{}, err
	}

	_, err := s.users.GetByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return model.TokenResponse{}, ErrUsernameTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return model.TokenResponse{}, fmt.Errorf("looking up user %q: %w", req.Username, err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrPasswordTooLong) {
			return model.TokenResponse{}, ErrPasswordTooLong
		}
		return model.TokenResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return model.TokenResponse{}, ErrUsernameTaken
		}
		return model.TokenResponse{}, fmt.Errorf("creating user %q: %w", req.Username, err)
	}

	return s.issue(user.ID)
}

// Login checks the credentials and returns a session token.
func (s *AuthService) Login(ctx context.Context, req model.CredentialsRequest) (model.TokenResponse, error) {
	if err := validateCredentials(req); err != nil {
		return model.TokenResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, fmt.Errorf("looking up user %q: %w", req.Username, err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("verifying password for user %d: %w", user.ID, err)
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	return s.issue(user.ID)
}

func (s *AuthService) issue(userID int64) (model.TokenResponse, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("issuing token: %w", err)
	}
	return model.TokenResponse{Token: token}, nil
}

func validateCredentials(req model.CredentialsRequest) error {
	if req.Username == "" {
		return ErrUsernameRequired
	}
	if req.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}
