package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/timetrack/internal/auth"
	"github.com/crucial707/timetrack/internal/models"
	"github.com/crucial707/timetrack/internal/repo"
	"github.com/crucial707/timetrack/internal/validation"
)

// UserStore is the identity store the auth service needs.
type UserStore interface {
	UsernameTaken(ctx context.Context, value string) (bool, error)
	Create(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// Credentials is a login or registration body. Nil fields were absent.
type Credentials struct {
	Username *string
	Password *string
}

type AuthService struct {
	users  UserStore
	hasher auth.Hasher
	tokens *auth.TokenManager

	// dummyHash is compared against when the user does not exist so that
	// unknown usernames cost the same as wrong passwords.
	dummyHash string
}

func NewAuthService(users UserStore, hasher auth.Hasher, tokens *auth.TokenManager) (*AuthService, error) {
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, dummyHash: dummy}, nil
}

// Register creates a user and logs them in.
func (s *AuthService) Register(ctx context.Context, in Credentials) (*models.User, auth.TokenPair, error) {
	errs := validation.New()
	username := strings.ToLower(strings.TrimSpace(deref(in.Username)))
	password := deref(in.Password)

	if username == "" {
		errs.Add("username", validation.MsgRequired)
	} else if validation.Email(errs, "username", username) {
		taken, err := s.users.UsernameTaken(ctx, username)
		if err != nil {
			return nil, auth.TokenPair{}, fmt.Errorf("check username: %w", err)
		}
		if taken {
			errs.Add("username", MsgUsernameTaken)
		}
	}

	if password == "" {
		errs.Add("password", validation.MsgRequired)
	} else {
		for _, msg := range auth.ValidatePassword(password, username) {
			errs.Add("password", msg)
		}
	}

	if err := errs.Err(); err != nil {
		return nil, auth.TokenPair{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	user, err := s.users.Create(ctx, username, username, hash)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, auth.TokenPair{}, validation.Errors{"username": {MsgUsernameTaken}}
		}
		return nil, auth.TokenPair{}, fmt.Errorf("create user: %w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// Login never tells the caller whether the username exists.
func (s *AuthService) Login(ctx context.Context, in Credentials) (*models.User, auth.TokenPair, error) {
	errs := validation.New()
	if deref(in.Username) == "" {
		errs.Add("username", validation.MsgRequired)
	}
	if deref(in.Password) == "" {
		errs.Add("password", validation.MsgRequired)
	}
	if err := errs.Err(); err != nil {
		return nil, auth.TokenPair{}, err
	}

	username := strings.ToLower(strings.TrimSpace(*in.Username))
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, *in.Password)
			return nil, auth.TokenPair{}, &AuthError{Detail: MsgNoActiveAccount}
		}
		return nil, auth.TokenPair{}, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, *in.Password); err != nil || !user.IsActive {
		return nil, auth.TokenPair{}, &AuthError{Detail: MsgNoActiveAccount}
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	return user, pair, nil
}

// RefreshToken exchanges a refresh token for a new access token. The token's
// user must still exist and be active.
func (s *AuthService) RefreshToken(ctx context.Context, refresh *string) (string, error) {
	if deref(refresh) == "" {
		return "", validation.Errors{"refresh": {validation.MsgRequired}}
	}
	claims, err := s.tokens.ParseRefresh(*refresh)
	if err != nil {
		return "", &AuthError{Detail: MsgTokenInvalid, Code: CodeTokenNotValid}
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !user.IsActive {
		return "", &AuthError{Detail: MsgNoActiveForToken, Code: CodeNoActiveAccount}
	}
	return s.tokens.IssueAccess(user.ID)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
