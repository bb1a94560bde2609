package store

import (
	"context"
	"fmt"

	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/pkg/builder"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// ProductStore persists storefront listings.
type ProductStore struct {
	db *builder.DB
}

// NewProduct carries the fields needed to list a product.
type NewProduct struct {
	Name        string
	Description *string
	ImgURL      *string
	Price       float64
	SellerID    int
}

// Create lists a product for sale. Negative prices are rejected before
// the insert; the database CHECK constraint backs this up.
func (s *ProductStore) Create(ctx context.Context, params NewProduct) (*models.Product, error) {
	if params.Price < 0 {
		return nil, fmt.Errorf("price %.2f: %w", params.Price, ErrInvalidPrice)
	}

	rows, err := builder.Insert[models.Product](s.db).
		Values(models.Product{
			Name:        params.Name,
			Description: params.Description,
			ImgURL:      params.ImgURL,
			Price:       params.Price,
			SellerID:    params.SellerID,
		}).
		ExecReturning(ctx)
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// ByID fetches a product by primary key.
func (s *ProductStore) ByID(ctx context.Context, id int) (*models.Product, error) {
	product, err := builder.Select[models.Product](s.db).
		Where(builder.Eq("id", id)).
		First(ctx)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// BySeller returns all products listed by one user, newest first.
func (s *ProductStore) BySeller(ctx context.Context, sellerID int) ([]models.Product, error) {
	return builder.Select[models.Product](s.db).
		Where(builder.Eq("seller_id", sellerID)).
		OrderByDesc("created_at").
		All(ctx)
}

// Catalog returns all products newest first, optionally limited.
func (s *ProductStore) Catalog(ctx context.Context, limit int) ([]models.Product, error) {
	q := builder.Select[models.Product](s.db).OrderByDesc("created_at")
	if limit > 0 {
		q.Limit(limit)
	}
	return q.All(ctx)
}

// ProductUpdate carries the editable product fields. Nil pointers leave
// the column untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	ImgURL      *string
	Price       *float64
}

// Update edits a product listing, rejecting negative prices.
func (s *ProductStore) Update(ctx context.Context, id int, params ProductUpdate) (*models.Product, error) {
	if params.Name == nil && params.Description == nil && params.ImgURL == nil && params.Price == nil {
		return s.ByID(ctx, id)
	}

	q := builder.Update[models.Product](s.db)
	if params.Name != nil {
		q.Set("name", *params.Name)
	}
	if params.Description != nil {
		q.Set("description", params.Description)
	}
	if params.ImgURL != nil {
		q.Set("img_url", params.ImgURL)
	}
	if params.Price != nil {
		if *params.Price < 0 {
			return nil, fmt.Errorf("price %.2f: %w", *params.Price, ErrInvalidPrice)
		}
		q.Set("price", *params.Price)
	}

	rows, err := q.
		Where(builder.Eq("id", id)).
		ExecReturning(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("product %d: %w", id, runtime.ErrNotFound)
	}
	return &rows[0], nil
}

// Delete removes a product. Cart entries referencing it are removed by
// the database cascade.
func (s *ProductStore) Delete(ctx context.Context, id int) error {
	_, err := builder.Delete[models.Product](s.db).
		Where(builder.Eq("id", id)).
		Exec(ctx)
	return err
}
