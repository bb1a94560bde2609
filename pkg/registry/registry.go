// Package registry provides a central schema registry for table metadata.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/marshallshelly/snapcart/pkg/schema"
)

// Registry is a thread-safe registry for table metadata.
type Registry struct {
	mu     sync.RWMutex
	parser *schema.Parser
	tables map[reflect.Type]*schema.TableMetadata
	names  map[string]*schema.TableMetadata
}

// NewRegistry creates a new Registry instance.
func NewRegistry() *Registry {
	return &Registry{
		parser: schema.NewParser(),
		tables: make(map[reflect.Type]*schema.TableMetadata),
		names:  make(map[string]*schema.TableMetadata),
	}
}

// Register registers a model type and extracts its metadata.
func (r *Registry) Register(model any) error {
	modelType := reflect.TypeOf(model)
	for modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	table, err := r.parser.Parse(modelType)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", modelType.Name(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[modelType] = table
	r.names[table.Name] = table
	return nil
}

// Get returns the metadata for a registered model type.
func (r *Registry) Get(model any) (*schema.TableMetadata, bool) {
	modelType := reflect.TypeOf(model)
	for modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.tables[modelType]
	return table, ok
}

// GetOrRegister returns the metadata for a model type, registering it first
// if necessary.
func (r *Registry) GetOrRegister(model any) (*schema.TableMetadata, error) {
	if table, ok := r.Get(model); ok {
		return table, nil
	}
	if err := r.Register(model); err != nil {
		return nil, err
	}
	table, _ := r.Get(model)
	return table, nil
}

// GetByName returns the metadata for a registered table name.
func (r *Registry) GetByName(name string) (*schema.TableMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.names[name]
	return table, ok
}

// GetAllTables returns all registered table metadata.
func (r *Registry) GetAllTables() []*schema.TableMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tables := make([]*schema.TableMetadata, 0, len(r.tables))
	for _, table := range r.tables {
		tables = append(tables, table)
	}
	return tables
}

// defaultRegistry is the process-wide registry used by the query builder.
var defaultRegistry = NewRegistry()

// Register registers a model with the default registry.
func Register(model any) error {
	return defaultRegistry.Register(model)
}

// GetOrRegister returns metadata from the default registry.
func GetOrRegister(model any) (*schema.TableMetadata, error) {
	return defaultRegistry.GetOrRegister(model)
}

// GetAllTables returns all tables from the default registry.
func GetAllTables() []*schema.TableMetadata {
	return defaultRegistry.GetAllTables()
}
