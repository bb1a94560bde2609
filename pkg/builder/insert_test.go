package builder

import (
	"testing"
)

func TestInsertQuery_ToSQL(t *testing.T) {
	registerTestModels(t)
	db := New(nil)

	t.Run("single row skips serial primary key", func(t *testing.T) {
		sql, args, err := Insert[TestUser](db).
			Values(TestUser{Username: "alice", Email: "alice@example.com", Age: 30}).
			ToSQL()
		if err != nil {
			t.Fatalf("ToSQL failed: %v", err)
		}

		want := "INSERT INTO test_user (username, email, age) VALUES ($1, $2, $3)"
		if sql != want {
			t.Errorf("SQL = %q\nwant  %q", sql, want)
		}
		if len(args) != 3 {
			t.Errorf("arg count = %d, want 3", len(args))
		}
	})

	t.Run("multiple rows", func(t *testing.T) {
		sql, args, err := Insert[TestUser](db).
			Values(
				TestUser{Username: "alice", Email: "a@example.com", Age: 30},
				TestUser{Username: "bob", Email: "b@example.com", Age: 25},
			).
			ToSQL()
		if err != nil {
			t.Fatalf("ToSQL failed: %v", err)
		}

		want := "INSERT INTO test_user (username, email, age) VALUES ($1, $2, $3), ($4, $5, $6)"
		if sql != want {
			t.Errorf("SQL = %q\nwant  %q", sql, want)
		}
		if len(args) != 6 {
			t.Errorf("arg count = %d, want 6", len(args))
		}
	})

	t.Run("on conflict do nothing", func(t *testing.T) {
		sql, _, err := Insert[TestFollow](db).
			Values(TestFollow{FollowerID: 1, FollowedID: 2}).
			OnConflictDoNothing("follower_id", "followed_id").
			ToSQL()
		if err != nil {
			t.Fatalf("ToSQL failed: %v", err)
		}

		want := "INSERT INTO test_follow (follower_id, followed_id) VALUES ($1, $2) ON CONFLICT (follower_id, followed_id) DO NOTHING"
		if sql != want {
			t.Errorf("SQL = %q\nwant  %q", sql, want)
		}
	})

	t.Run("returning", func(t *testing.T) {
		sql, _, err := Insert[TestUser](db).
			Values(TestUser{Username: "alice", Email: "a@example.com"}).
			Returning("id", "username").
			ToSQL()
		if err != nil {
			t.Fatalf("ToSQL failed: %v", err)
		}

		want := "INSERT INTO test_user (username, email, age) VALUES ($1, $2, $3) RETURNING id, username"
		if sql != want {
			t.Errorf("SQL = %q\nwant  %q", sql, want)
		}
	})

	t.Run("no values", func(t *testing.T) {
		if _, _, err := Insert[TestUser](db).ToSQL(); err == nil {
			t.Error("expected error for insert without values")
		}
	})
}
