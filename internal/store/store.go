// Package store implements the persistence layer for snapcart: typed
// entity stores for users, posts and products, plus a relationship
// manager for the like, cart and follow associations.
package store

import (
	"github.com/marshallshelly/snapcart/pkg/builder"
)

// Store bundles the entity stores and the relationship manager over a
// single database handle. All state lives in the handle; Store carries
// no globals and is safe for concurrent use.
type Store struct {
	db            *builder.DB
	users         *UserStore
	posts         *PostStore
	products      *ProductStore
	relationships *RelationshipManager
}

// New creates a Store over db.
func New(db *builder.DB) *Store {
	return &Store{
		db:            db,
		users:         &UserStore{db: db},
		posts:         &PostStore{db: db},
		products:      &ProductStore{db: db},
		relationships: &RelationshipManager{db: db},
	}
}

// DB exposes the underlying query builder handle.
func (s *Store) DB() *builder.DB { return s.db }

// Users returns the user entity store.
func (s *Store) Users() *UserStore { return s.users }

// Posts returns the post entity store.
func (s *Store) Posts() *PostStore { return s.posts }

// Products returns the product entity store.
func (s *Store) Products() *ProductStore { return s.products }

// Relationships returns the relationship manager.
func (s *Store) Relationships() *RelationshipManager { return s.relationships }
