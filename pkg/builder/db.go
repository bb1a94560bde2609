package builder

import (
	"github.com/marshallshelly/snapcart/pkg/registry"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// DB wraps runtime.DB and provides query builder methods.
type DB struct {
	db *runtime.DB
}

// New creates a new query builder DB from a runtime DB.
func New(db *runtime.DB) *DB {
	return &DB{db: db}
}

// Runtime returns the underlying runtime.DB.
func (d *DB) Runtime() *runtime.DB {
	return d.db
}

// exec returns the executor backing this DB, or nil when the builder was
// constructed without a connection (SQL generation only).
func (d *DB) exec() executor {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Pool()
}

// Select creates a new type-safe SELECT query.
// Usage: builder.Select[User](db).Where(...).All(ctx)
func Select[T any](d *DB) *SelectQuery[T] {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return &SelectQuery[T]{exec: d.exec()}
	}
	return &SelectQuery[T]{
		exec:    d.exec(),
		table:   table,
		columns: []string{"*"},
	}
}

// Insert creates a new type-safe INSERT query.
// Usage: builder.Insert[User](db).Values(user).Exec(ctx)
func Insert[T any](d *DB) *InsertQuery[T] {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return &InsertQuery[T]{exec: d.exec()}
	}
	return &InsertQuery[T]{
		exec:  d.exec(),
		table: table,
	}
}

// Update creates a new type-safe UPDATE query.
// Usage: builder.Update[User](db).Set("name", "John").Where(...).Exec(ctx)
func Update[T any](d *DB) *UpdateQuery[T] {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return &UpdateQuery[T]{exec: d.exec()}
	}
	return &UpdateQuery[T]{
		exec:  d.exec(),
		table: table,
		sets:  make(map[string]interface{}),
	}
}

// Delete creates a new type-safe DELETE query.
// Usage: builder.Delete[User](db).Where(...).Exec(ctx)
func Delete[T any](d *DB) *DeleteQuery[T] {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return &DeleteQuery[T]{exec: d.exec()}
	}
	return &DeleteQuery[T]{
		exec:  d.exec(),
		table: table,
	}
}
