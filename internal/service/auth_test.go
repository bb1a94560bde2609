package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/internal/store"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// fakeAccounts is an in-memory UserAccounts for testing.
type fakeAccounts struct {
	users  map[string]*models.User // by username
	nextID int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{users: make(map[string]*models.User), nextID: 1}
}

func (f *fakeAccounts) Create(_ context.Context, params store.NewUser) (*models.User, error) {
	if _, ok := f.users[params.Username]; ok {
		return nil, store.ErrUsernameTaken
	}
	for _, u := range f.users {
		if u.Email == params.Email {
			return nil, store.ErrEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           f.nextID,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		APIToken:     "token-" + params.Username,
	}
	f.nextID++
	f.users[params.Username] = user
	return user, nil
}

func (f *fakeAccounts) ByUsername(_ context.Context, username string) (*models.User, error) {
	if user, ok := f.users[username]; ok {
		return user, nil
	}
	return nil, runtime.ErrNotFound
}

func (f *fakeAccounts) ByToken(_ context.Context, token string) (*models.User, error) {
	for _, user := range f.users {
		if user.APIToken == token {
			return user, nil
		}
	}
	return nil, runtime.ErrNotFound
}

func TestAuthService_Signup(t *testing.T) {
	auth := NewAuthService(newFakeAccounts())
	ctx := context.Background()

	user, err := auth.Signup(ctx, store.NewUser{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.APIToken)

	_, err = auth.Signup(ctx, store.NewUser{Username: "alice", Email: "other@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, store.ErrUsernameTaken)

	_, err = auth.Signup(ctx, store.NewUser{Username: "bob", Email: "alice@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, store.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	accounts := newFakeAccounts()
	auth := NewAuthService(accounts)
	ctx := context.Background()

	_, err := auth.Signup(ctx, store.NewUser{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user, err := auth.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = auth.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown usernames get the same error as bad passwords.
	_, err = auth.Login(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Authenticate(t *testing.T) {
	accounts := newFakeAccounts()
	auth := NewAuthService(accounts)
	ctx := context.Background()

	created, err := auth.Signup(ctx, store.NewUser{Username: "alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user, err := auth.Authenticate(ctx, created.APIToken)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = auth.Authenticate(ctx, "bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
