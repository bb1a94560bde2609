// Package builder provides a typed SQL query builder over pgx.
package builder

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Operator represents a SQL comparison operator.
type Operator string

const (
	OpEqual              Operator = "="
	OpNotEqual           Operator = "!="
	OpGreaterThan        Operator = ">"
	OpGreaterThanOrEqual Operator = ">="
	OpLessThan           Operator = "<"
	OpLessThanOrEqual    Operator = "<="
	OpIn                 Operator = "IN"
	OpIsNull             Operator = "IS NULL"
	OpIsNotNull          Operator = "IS NOT NULL"
)

// Logic joins consecutive WHERE conditions.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Condition represents a single WHERE condition.
type Condition struct {
	Column   string
	Operator Operator
	Value    interface{}
	Logic    Logic
	Group    []Condition
}

// OrderDirection represents ORDER BY direction.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "ASC"
	OrderDesc OrderDirection = "DESC"
)

// OrderBy represents an ORDER BY clause entry.
type OrderBy struct {
	Column    string
	Direction OrderDirection
}

// JoinType represents a SQL join type.
type JoinType string

const (
	InnerJoin JoinType = "INNER JOIN"
	LeftJoin  JoinType = "LEFT JOIN"
)

// Join represents a JOIN clause.
type Join struct {
	Type      JoinType
	Table     string
	Condition string
}

// OnConflictAction represents the action of an ON CONFLICT clause.
type OnConflictAction string

const (
	DoNothing OnConflictAction = "DO NOTHING"
)

// OnConflict represents an ON CONFLICT clause.
type OnConflict struct {
	Columns []string
	Action  OnConflictAction
}

// executor is the common query surface of a pool and a transaction.
type executor interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
