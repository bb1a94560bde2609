package runtime

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "no rows",
			err:  pgx.ErrNoRows,
			want: ErrNotFound,
		},
		{
			name: "unique violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			want: ErrDuplicateKey,
		},
		{
			name: "foreign key violation",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "posts_user_id_fkey"},
			want: ErrForeignKeyViolation,
		},
		{
			name: "check violation",
			err:  &pgconn.PgError{Code: "23514", ConstraintName: "follows_check"},
			want: ErrCheckViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError(%v) = %v, want %v in chain", tt.err, got, tt.want)
			}
		})
	}

	if got := MapError(nil); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapErrorKeepsDriverError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	mapped := MapError(pgErr)

	var got *pgconn.PgError
	if !errors.As(mapped, &got) {
		t.Fatalf("mapped error lost the driver error: %v", mapped)
	}
	if got.ConstraintName != "users_email_key" {
		t.Errorf("constraint = %q, want %q", got.ConstraintName, "users_email_key")
	}
}
