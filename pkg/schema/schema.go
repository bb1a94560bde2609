// Package schema extracts table metadata from struct tags.
//
// Columns are declared with the `po` tag:
//
//	type User struct {
//		ID       int    `po:"id,primaryKey,serial"`
//		Username string `po:"username,varchar(45),unique,notNull"`
//	}
//
// The first tag element is the column name; the rest are type names and
// options (primaryKey, serial, notNull, unique, default(expr), fk:table.col,
// ondelete:cascade|setnull|restrict).
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// StructTagKey is the key used in struct tags.
const StructTagKey = "po"

// TableMetadata describes a table derived from a struct type.
type TableMetadata struct {
	Name        string
	GoType      reflect.Type
	Columns     []ColumnMetadata
	PrimaryKey  []string
	ForeignKeys []ForeignKeyMetadata
}

// ColumnMetadata describes a single column.
type ColumnMetadata struct {
	Name          string
	GoField       string
	SQLType       string
	PrimaryKey    bool
	AutoIncrement bool
	NotNull       bool
	Unique        bool
	Default       *string
}

// ForeignKeyMetadata describes a foreign key reference.
type ForeignKeyMetadata struct {
	Column     string
	RefTable   string
	RefColumn  string
	OnDelete   string
}

// IsPrimaryKey reports whether the named column is part of the primary key.
func (t *TableMetadata) IsPrimaryKey(column string) bool {
	for _, pk := range t.PrimaryKey {
		if pk == column {
			return true
		}
	}
	return false
}

// Column returns the metadata for the named column, if present.
func (t *TableMetadata) Column(name string) (ColumnMetadata, bool) {
	for _, col := range t.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnMetadata{}, false
}

var (
	tableNamesMu     sync.RWMutex
	customTableNames = make(map[string]string) // struct name -> table name
)

// RegisterTableName registers a custom table name for a struct type.
// Without a registration the table name defaults to the snake_cased
// struct name.
func RegisterTableName(structName, tableName string) {
	tableNamesMu.Lock()
	defer tableNamesMu.Unlock()
	customTableNames[structName] = tableName
}

// Parser parses struct definitions to extract table metadata.
type Parser struct {
	mu    sync.Mutex
	cache map[reflect.Type]*TableMetadata
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		cache: make(map[reflect.Type]*TableMetadata),
	}
}

// Parse extracts TableMetadata from a Go struct type.
func (p *Parser) Parse(modelType reflect.Type) (*TableMetadata, error) {
	for modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}
	if modelType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", modelType.Kind())
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cached, ok := p.cache[modelType]; ok {
		return cached, nil
	}

	table := &TableMetadata{
		Name:   extractTableName(modelType),
		GoType: modelType,
	}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		if !field.IsExported() {
			continue
		}

		tagValue := field.Tag.Get(StructTagKey)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		column, fk, err := parseTag(field.Name, tagValue)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tag for field %s: %w", field.Name, err)
		}

		if column.PrimaryKey {
			table.PrimaryKey = append(table.PrimaryKey, column.Name)
		}
		if fk != nil {
			fk.Column = column.Name
			table.ForeignKeys = append(table.ForeignKeys, *fk)
		}

		table.Columns = append(table.Columns, column)
	}

	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("struct %s has no po-tagged fields", modelType.Name())
	}

	p.cache[modelType] = table
	return table, nil
}

// parseTag parses a single po tag into column metadata and an optional
// foreign key.
func parseTag(fieldName, tag string) (ColumnMetadata, *ForeignKeyMetadata, error) {
	parts := splitTag(tag)
	if len(parts) == 0 || parts[0] == "" {
		return ColumnMetadata{}, nil, fmt.Errorf("tag must start with a column name")
	}

	column := ColumnMetadata{
		Name:    parts[0],
		GoField: fieldName,
	}

	var fk *ForeignKeyMetadata
	for _, opt := range parts[1:] {
		switch {
		case opt == "primaryKey":
			column.PrimaryKey = true
			column.NotNull = true
		case opt == "serial":
			column.AutoIncrement = true
		case opt == "notNull":
			column.NotNull = true
		case opt == "unique":
			column.Unique = true
		case strings.HasPrefix(opt, "default(") && strings.HasSuffix(opt, ")"):
			expr := opt[len("default(") : len(opt)-1]
			column.Default = &expr
		case strings.HasPrefix(opt, "fk:"):
			ref := strings.TrimPrefix(opt, "fk:")
			dot := strings.LastIndex(ref, ".")
			if dot <= 0 || dot == len(ref)-1 {
				return ColumnMetadata{}, nil, fmt.Errorf("invalid foreign key reference %q", ref)
			}
			fk = &ForeignKeyMetadata{
				RefTable:  ref[:dot],
				RefColumn: ref[dot+1:],
			}
		case strings.HasPrefix(opt, "ondelete:"):
			if fk == nil {
				return ColumnMetadata{}, nil, fmt.Errorf("ondelete requires a preceding fk option")
			}
			fk.OnDelete = strings.TrimPrefix(opt, "ondelete:")
		case opt == "":
			// Tolerate trailing commas.
		default:
			// Anything else is a SQL type name (varchar(45), numeric(10,2), ...).
			column.SQLType = opt
		}
	}

	return column, fk, nil
}

// splitTag splits a tag on commas, keeping parenthesized groups such as
// numeric(10,2) intact.
func splitTag(tag string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range tag {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(tag[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(tag[start:]))
	return parts
}

// extractTableName resolves the table name for a struct type.
func extractTableName(modelType reflect.Type) string {
	structName := modelType.Name()

	tableNamesMu.RLock()
	name, ok := customTableNames[structName]
	tableNamesMu.RUnlock()
	if ok {
		return name
	}

	return toSnakeCase(structName)
}

// toSnakeCase converts CamelCase to snake_case.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
