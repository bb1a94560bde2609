package models

import (
	"testing"

	"github.com/marshallshelly/snapcart/pkg/registry"
)

func TestRegisterAll(t *testing.T) {
	if err := RegisterAll(); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}

	tests := []struct {
		model     interface{}
		tableName string
		pkColumns int
	}{
		{User{}, "users", 1},
		{Post{}, "posts", 1},
		{Product{}, "products", 1},
		{Like{}, "likes", 2},
		{CartItem{}, "cart_items", 2},
		{Follow{}, "follows", 2},
	}

	for _, tt := range tests {
		table, err := registry.GetOrRegister(tt.model)
		if err != nil {
			t.Fatalf("metadata for %T: %v", tt.model, err)
		}
		if table.Name != tt.tableName {
			t.Errorf("%T table = %q, want %q", tt.model, table.Name, tt.tableName)
		}
		if len(table.PrimaryKey) != tt.pkColumns {
			t.Errorf("%T primary key = %v, want %d column(s)", tt.model, table.PrimaryKey, tt.pkColumns)
		}
	}
}

func TestUserColumns(t *testing.T) {
	table, err := registry.GetOrRegister(User{})
	if err != nil {
		t.Fatalf("metadata for User: %v", err)
	}

	for _, name := range []string{"username", "email", "api_token"} {
		col, ok := table.Column(name)
		if !ok {
			t.Fatalf("column %s missing", name)
		}
		if !col.Unique {
			t.Errorf("column %s should be unique", name)
		}
	}
}

func TestAssociationForeignKeys(t *testing.T) {
	table, err := registry.GetOrRegister(Follow{})
	if err != nil {
		t.Fatalf("metadata for Follow: %v", err)
	}

	if len(table.ForeignKeys) != 2 {
		t.Fatalf("foreign keys = %v, want 2", table.ForeignKeys)
	}
	for _, fk := range table.ForeignKeys {
		if fk.RefTable != "users" || fk.OnDelete != "CASCADE" {
			t.Errorf("fk %+v, want users reference with CASCADE", fk)
		}
	}
}
