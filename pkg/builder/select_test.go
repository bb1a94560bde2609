package builder

import (
	"testing"

	"github.com/marshallshelly/snapcart/pkg/registry"
)

type TestUser struct {
	ID       int    `po:"id,integer,primaryKey,serial"`
	Username string `po:"username,varchar(64),notNull,unique"`
	Email    string `po:"email,varchar(120),notNull,unique"`
	Age      int    `po:"age,integer"`
}

type TestFollow struct {
	FollowerID int `po:"follower_id,integer,primaryKey"`
	FollowedID int `po:"followed_id,integer,primaryKey"`
}

func registerTestModels(t *testing.T) {
	t.Helper()
	if err := registry.Register(TestUser{}); err != nil {
		t.Fatalf("failed to register TestUser: %v", err)
	}
	if err := registry.Register(TestFollow{}); err != nil {
		t.Fatalf("failed to register TestFollow: %v", err)
	}
}

func TestSelectQuery_ToSQL(t *testing.T) {
	registerTestModels(t)
	db := New(nil) // SQL generation only

	tests := []struct {
		name       string
		query      func() *SelectQuery[TestUser]
		wantSQL    string
		wantArgLen int
	}{
		{
			name:       "select all",
			query:      func() *SelectQuery[TestUser] { return Select[TestUser](db) },
			wantSQL:    "SELECT * FROM test_user",
			wantArgLen: 0,
		},
		{
			name: "select columns",
			query: func() *SelectQuery[TestUser] {
				return Select[TestUser](db).Columns("id", "username")
			},
			wantSQL:    "SELECT id, username FROM test_user",
			wantArgLen: 0,
		},
		{
			name: "where equality",
			query: func() *SelectQuery[TestUser] {
				return Select[TestUser](db).Where(Eq("username", "alice"))
			},
			wantSQL:    "SELECT * FROM test_user WHERE username = $1",
			wantArgLen: 1,
		},
		{
			name: "where and",
			query: func() *SelectQuery[TestUser] {
				return Select[TestUser](db).Where(Eq("username", "alice")).And(Gt("age", 18))
			},
			wantSQL:    "SELECT * FROM test_user WHERE username = $1 AND age > $2",
			wantArgLen: 2,
		},
		{
			name: "where or",
			query: func() *SelectQuery[TestUser] {
				return Select[TestUser](db).Where(Eq("username", "alice")).Or(Eq("username", "bob"))
			},
			wantSQL:    "SELECT * FROM test_user WHERE username = $1 OR username = $2",
			wantArgLen: 2,
		},
		{
			name: "inner join with qualified columns",
			query: func() *SelectQuery[TestUser] {
				return Select[TestUser](db).
					Columns("test_user.*").
					InnerJoin("test_follow", "test_follow.followed_id = test_user.id").
					Where(Eq("test_follow.follower_id", 1))
			},
			wantSQL:    "SELECT test_user.* FROM test_user INNER JOIN test_follow ON test_follow.followed_id = test_user.id WHERE test_follow.follower_id = $1",
			wantArgLen: 1,
		},
		{
			name: "order limit offset",
			query: func() *SelectQuery[TestUser] {
				return Select[TestUser](db).OrderByDesc("id").Limit(10).Offset(20)
			},
			wantSQL:    "SELECT * FROM test_user ORDER BY id DESC LIMIT 10 OFFSET 20",
			wantArgLen: 0,
		},
		{
			name: "distinct",
			query: func() *SelectQuery[TestUser] {
				return Select[TestUser](db).Distinct().Columns("age")
			},
			wantSQL:    "SELECT DISTINCT age FROM test_user",
			wantArgLen: 0,
		},
		{
			name: "in condition",
			query: func() *SelectQuery[TestUser] {
				return Select[TestUser](db).Where(In("id", 1, 2, 3))
			},
			wantSQL:    "SELECT * FROM test_user WHERE id IN ($1, $2, $3)",
			wantArgLen: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.query().ToSQL()
			if err != nil {
				t.Fatalf("ToSQL failed: %v", err)
			}
			if sql != tt.wantSQL {
				t.Errorf("SQL = %q\nwant  %q", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgLen {
				t.Errorf("arg count = %d, want %d", len(args), tt.wantArgLen)
			}
		})
	}
}
