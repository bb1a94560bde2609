package builder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/marshallshelly/snapcart/pkg/registry"
)

// Tx wraps a pgx transaction and provides query builder methods.
type Tx struct {
	tx pgx.Tx
}

// Begin starts a new transaction.
func (d *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback rolls back the transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (d *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := d.Begin(ctx)
	if err != nil {
		return err
	}

	// Rollback after a successful commit returns ErrTxClosed, which is
	// safe to ignore along with any other rollback failure here.
	defer func() { _ = tx.tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// TxSelect creates a new type-safe SELECT query within the transaction.
// Usage: builder.TxSelect[User](tx).Where(...).All(ctx)
func TxSelect[T any](t *Tx) *SelectQuery[T] {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return &SelectQuery[T]{exec: t.tx}
	}
	return &SelectQuery[T]{
		exec:    t.tx,
		table:   table,
		columns: []string{"*"},
	}
}

// TxInsert creates a new type-safe INSERT query within the transaction.
// Usage: builder.TxInsert[User](tx).Values(user).ExecReturning(ctx)
func TxInsert[T any](t *Tx) *InsertQuery[T] {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return &InsertQuery[T]{exec: t.tx}
	}
	return &InsertQuery[T]{
		exec:  t.tx,
		table: table,
	}
}

// TxUpdate creates a new type-safe UPDATE query within the transaction.
// Usage: builder.TxUpdate[User](tx).Set("name", "John").Where(...).Exec(ctx)
func TxUpdate[T any](t *Tx) *UpdateQuery[T] {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return &UpdateQuery[T]{exec: t.tx}
	}
	return &UpdateQuery[T]{
		exec:  t.tx,
		table: table,
		sets:  make(map[string]interface{}),
	}
}

// TxDelete creates a new type-safe DELETE query within the transaction.
// Usage: builder.TxDelete[User](tx).Where(...).Exec(ctx)
func TxDelete[T any](t *Tx) *DeleteQuery[T] {
	var model T
	table, err := registry.GetOrRegister(model)
	if err != nil {
		return &DeleteQuery[T]{exec: t.tx}
	}
	return &DeleteQuery[T]{
		exec:  t.tx,
		table: table,
	}
}
