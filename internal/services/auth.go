package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/oaktires/accounts-api/internal/auth"
	"github.com/oaktires/accounts-api/internal/notify"
	"github.com/oaktires/accounts-api/internal/store"
	"github.com/oaktires/accounts-api/types"
	"github.com/rs/zerolog/log"
)

// ErrInvalidCredentials is returned for both an unknown username and a
// wrong password, so responses cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService orchestrates registration and login over the credential
// store, password hasher, token issuer, and login-event notifier.
type AuthService struct {
	repo     UserRepository
	hasher   auth.PasswordHasher
	issuer   *auth.TokenIssuer
	notifier *notify.Notifier
}

func NewAuthService(repo UserRepository, hasher auth.PasswordHasher, issuer *auth.TokenIssuer, notifier *notify.Notifier) *AuthService {
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		issuer:   issuer,
		notifier: notifier,
	}
}

// Register creates a new account. A duplicate username or email
// surfaces as store.ErrConflict; the users table's unique constraints
// arbitrate concurrent registrations. No token is issued here.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (types.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return types.User{}, err
	}

	user := types.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return types.User{}, err
	}

	log.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies credentials and returns a signed token. On success it
// stamps last_login_at and fires the login-event notifier without
// waiting for delivery.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", err
	}

	token, err := s.issuer.Issue(user.ID, user.Username)
	if err != nil {
		return "", err
	}

	s.notifier.LoginEvent(notify.LoginEvent{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		LastLoginAt: now,
	})

	log.Info().Str("username", user.Username).Msg("user logged in")
	return token, nil
}
