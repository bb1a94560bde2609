package models

import (
	"github.com/marshallshelly/snapcart/pkg/registry"
	"github.com/marshallshelly/snapcart/pkg/schema"
)

func init() {
	// Table names that toSnakeCase would not pluralize.
	schema.RegisterTableName("User", "users")
	schema.RegisterTableName("Post", "posts")
	schema.RegisterTableName("Product", "products")
	schema.RegisterTableName("Like", "likes")
	schema.RegisterTableName("CartItem", "cart_items")
	schema.RegisterTableName("Follow", "follows")
}

// RegisterAll registers every snapcart model with the default registry so
// query builders can resolve table metadata without a first-use penalty.
func RegisterAll() error {
	for _, model := range []interface{}{
		User{}, Post{}, Product{}, Like{}, CartItem{}, Follow{},
	} {
		if err := registry.Register(model); err != nil {
			return err
		}
	}
	return nil
}
