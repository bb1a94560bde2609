// Package service implements application logic on top of the store layer.
package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/internal/store"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// UserAccounts is the slice of the user store that auth needs.
type UserAccounts interface {
	Create(ctx context.Context, params store.NewUser) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByToken(ctx context.Context, token string) (*models.User, error)
}

// AuthService handles signup, login and token authentication.
type AuthService struct {
	users UserAccounts
	log   *logrus.Entry
}

// NewAuthService creates an AuthService over the given user store.
func NewAuthService(users UserAccounts) *AuthService {
	return &AuthService{
		users: users,
		log:   logrus.WithField("component", "auth"),
	}
}

// Signup creates a new account and returns it with its freshly minted
// api token. Duplicate usernames and emails surface as the store's
// ErrUsernameTaken and ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, params store.NewUser) (*models.User, error) {
	user, err := s.users.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.log.WithField("username", user.Username).Info("account created")
	return user, nil
}

// Login verifies a username/password pair and returns the account. Both
// unknown usernames and wrong passwords return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, runtime.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.log.WithField("username", user.Username).Info("login")
	return user, nil
}

// Authenticate resolves an api token to its owning account.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.ByToken(ctx, token)
	if err != nil {
		if errors.Is(err, runtime.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}
