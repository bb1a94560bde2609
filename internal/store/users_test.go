package store

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// insertConflict builds the error shape the query builder produces when
// an insert trips a unique index.
func insertConflict(constraint string) error {
	return fmt.Errorf("failed to execute insert: %w", runtime.MapError(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: constraint,
	}))
}

func TestUniqueConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "username index collision",
			err:  insertConflict("users_username_key"),
			want: ErrUsernameTaken,
		},
		{
			name: "email index collision",
			err:  insertConflict("users_email_key"),
			want: ErrEmailTaken,
		},
		{
			name: "other unique index passes through",
			err:  insertConflict("users_api_token_key"),
			want: runtime.ErrDuplicateKey,
		},
		{
			name: "unrelated error passes through",
			err:  runtime.ErrNotFound,
			want: runtime.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, uniqueConflict(tt.err), tt.want)
		})
	}
}

func TestUniqueConflictNil(t *testing.T) {
	assert.NoError(t, uniqueConflict(nil))
}
