package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/pkg/builder"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// UserStore persists user accounts.
type UserStore struct {
	db *builder.DB
}

// NewUser carries the fields needed to create an account. Password is the
// plaintext password; it is hashed before it touches the database.
type NewUser struct {
	Username string
	Email    string
	Password string
	ImgURL   *string
}

// Create registers a new account. Username and email are checked for
// uniqueness inside the same transaction as the insert so that the
// caller can distinguish which field collided. The api token is minted
// here and never changes afterwards.
func (s *UserStore) Create(ctx context.Context, params NewUser) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	token, err := newAPIToken()
	if err != nil {
		return nil, err
	}

	var created models.User
	err = s.db.WithTx(ctx, func(tx *builder.Tx) error {
		taken, err := builder.TxSelect[models.User](tx).
			Where(builder.Eq("username", params.Username)).
			Exists(ctx)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		taken, err = builder.TxSelect[models.User](tx).
			Where(builder.Eq("email", params.Email)).
			Exists(ctx)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}

		rows, err := builder.TxInsert[models.User](tx).
			Values(models.User{
				Username:     params.Username,
				Email:        params.Email,
				PasswordHash: string(hash),
				APIToken:     token,
				ImgURL:       params.ImgURL,
			}).
			ExecReturning(ctx)
		if err != nil {
			return err
		}
		created = rows[0]
		return nil
	})
	if err != nil {
		return nil, uniqueConflict(err)
	}
	return &created, nil
}

// uniqueConflict translates a unique-index violation from a lost signup
// race into the same field-specific errors the in-transaction pre-check
// returns. The unique indexes stay the authoritative guard; the
// pre-check only exists for the better error message. Anything else
// passes through unchanged.
func uniqueConflict(err error) error {
	if !errors.Is(err, runtime.ErrDuplicateKey) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return ErrUsernameTaken
	case "users_email_key":
		return ErrEmailTaken
	}
	return err
}

// ByID fetches a user by primary key.
func (s *UserStore) ByID(ctx context.Context, id int) (*models.User, error) {
	user, err := builder.Select[models.User](s.db).
		Where(builder.Eq("id", id)).
		First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ByUsername fetches a user by their unique username.
func (s *UserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := builder.Select[models.User](s.db).
		Where(builder.Eq("username", username)).
		First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ByEmail fetches a user by their unique email address.
func (s *UserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := builder.Select[models.User](s.db).
		Where(builder.Eq("email", email)).
		First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ByToken fetches the user owning an api token.
func (s *UserStore) ByToken(ctx context.Context, token string) (*models.User, error) {
	user, err := builder.Select[models.User](s.db).
		Where(builder.Eq("api_token", token)).
		First(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// All returns every user ordered by signup time.
func (s *UserStore) All(ctx context.Context) ([]models.User, error) {
	return builder.Select[models.User](s.db).
		OrderByAsc("id").
		All(ctx)
}

// UpdateProfile changes a user's profile image. Identity fields and the
// api token are deliberately not updatable here.
func (s *UserStore) UpdateProfile(ctx context.Context, id int, imgURL *string) (*models.User, error) {
	rows, err := builder.Update[models.User](s.db).
		Set("img_url", imgURL).
		Where(builder.Eq("id", id)).
		ExecReturning(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("user %d: %w", id, runtime.ErrNotFound)
	}
	return &rows[0], nil
}

// Delete removes a user. Posts, products, likes, cart items and follow
// edges referencing the user are removed by the database cascades.
func (s *UserStore) Delete(ctx context.Context, id int) error {
	_, err := builder.Delete[models.User](s.db).
		Where(builder.Eq("id", id)).
		Exec(ctx)
	return err
}

// newAPIToken mints a 128-bit random token rendered as 32 hex characters.
func newAPIToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate api token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
