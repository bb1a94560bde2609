package registry

import (
	"testing"
)

type Widget struct {
	ID   int    `po:"id,integer,primaryKey,serial"`
	Name string `po:"name,varchar(100),notNull"`
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get(Widget{}); ok {
		t.Fatal("Get should miss before registration")
	}

	if err := r.Register(Widget{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	table, ok := r.Get(&Widget{})
	if !ok {
		t.Fatal("Get should hit after registration, including via pointer")
	}
	if table.Name != "widget" {
		t.Errorf("table name = %q, want widget", table.Name)
	}

	byName, ok := r.GetByName("widget")
	if !ok || byName != table {
		t.Error("GetByName should return the same metadata")
	}
}

func TestRegistry_GetOrRegister(t *testing.T) {
	r := NewRegistry()

	table, err := r.GetOrRegister(Widget{})
	if err != nil {
		t.Fatalf("GetOrRegister failed: %v", err)
	}
	if table.Name != "widget" {
		t.Errorf("table name = %q, want widget", table.Name)
	}

	again, err := r.GetOrRegister(Widget{})
	if err != nil {
		t.Fatalf("GetOrRegister failed on second call: %v", err)
	}
	if again != table {
		t.Error("GetOrRegister should return cached metadata")
	}

	if len(r.GetAllTables()) != 1 {
		t.Errorf("table count = %d, want 1", len(r.GetAllTables()))
	}
}

func TestRegistry_RejectsNonStruct(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(42); err == nil {
		t.Error("expected error when registering a non-struct")
	}
}
