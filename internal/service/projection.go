package service

import (
	"context"

	"github.com/marshallshelly/snapcart/internal/dto"
	"github.com/marshallshelly/snapcart/internal/models"
)

// UserDirectory resolves the users referenced by posts and products.
type UserDirectory interface {
	ByID(ctx context.Context, id int) (*models.User, error)
}

// LikeCounter reports how many users have liked a post.
type LikeCounter interface {
	LikeCount(ctx context.Context, postID int) (int64, error)
}

// ProjectionService assembles the denormalized API views: posts with
// author names and like counts, products with seller names. Derived
// fields are computed per read, never cached across requests.
type ProjectionService struct {
	users UserDirectory
	likes LikeCounter
}

// NewProjectionService creates a ProjectionService over the given
// lookups.
func NewProjectionService(users UserDirectory, likes LikeCounter) *ProjectionService {
	return &ProjectionService{users: users, likes: likes}
}

// Post projects one post with its author username and like count.
func (p *ProjectionService) Post(ctx context.Context, post *models.Post) (dto.PostResponse, error) {
	author, err := p.users.ByID(ctx, post.UserID)
	if err != nil {
		return dto.PostResponse{}, err
	}
	likes, err := p.likes.LikeCount(ctx, post.ID)
	if err != nil {
		return dto.PostResponse{}, err
	}
	return dto.PostFromModel(post, author.Username, likes), nil
}

// Posts projects a slice of posts, caching author lookups per user so a
// feed of one prolific author costs a single user fetch.
func (p *ProjectionService) Posts(ctx context.Context, posts []models.Post) ([]dto.PostResponse, error) {
	authors := make(map[int]string)
	results := make([]dto.PostResponse, 0, len(posts))

	for i := range posts {
		post := &posts[i]
		username, ok := authors[post.UserID]
		if !ok {
			author, err := p.users.ByID(ctx, post.UserID)
			if err != nil {
				return nil, err
			}
			username = author.Username
			authors[post.UserID] = username
		}

		likes, err := p.likes.LikeCount(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, dto.PostFromModel(post, username, likes))
	}
	return results, nil
}

// Product projects one product with its seller username.
func (p *ProjectionService) Product(ctx context.Context, product *models.Product) (dto.ProductResponse, error) {
	seller, err := p.users.ByID(ctx, product.SellerID)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return dto.ProductFromModel(product, seller.Username), nil
}

// Products projects a slice of products with cached seller lookups.
func (p *ProjectionService) Products(ctx context.Context, products []models.Product) ([]dto.ProductResponse, error) {
	sellers := make(map[int]string)
	results := make([]dto.ProductResponse, 0, len(products))

	for i := range products {
		product := &products[i]
		username, ok := sellers[product.SellerID]
		if !ok {
			seller, err := p.users.ByID(ctx, product.SellerID)
			if err != nil {
				return nil, err
			}
			username = seller.Username
			sellers[product.SellerID] = username
		}
		results = append(results, dto.ProductFromModel(product, username))
	}
	return results, nil
}
