// Package dto defines the JSON projections served by the HTTP API.
package dto

import (
	"time"

	"github.com/marshallshelly/snapcart/internal/models"
)

// UserResponse is the public projection of a user. The password hash is
// never serialized; the api token only appears in signup and login
// responses.
type UserResponse struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	ImgURL   *string `json:"img_url,omitempty"`
	APIToken string  `json:"apitoken,omitempty"`
}

// UserFromModel projects a user without exposing the api token.
func UserFromModel(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		ImgURL:   u.ImgURL,
	}
}

// UserWithToken projects a user including the api token. Used only for
// signup and login responses.
func UserWithToken(u *models.User) UserResponse {
	resp := UserFromModel(u)
	resp.APIToken = u.APIToken
	return resp
}

// PostResponse is the public projection of a post, denormalized with the
// author's username and the current like count.
type PostResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Caption     *string   `json:"caption,omitempty"`
	ImgURL      string    `json:"img_url"`
	Author      string    `json:"author"`
	Likes       int64     `json:"likes"`
	DateCreated time.Time `json:"date_created"`
}

// PostFromModel projects a post with its author name and like count.
func PostFromModel(p *models.Post, author string, likes int64) PostResponse {
	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Caption:     p.Caption,
		ImgURL:      p.ImgURL,
		Author:      author,
		Likes:       likes,
		DateCreated: p.CreatedAt,
	}
}

// ProductResponse is the public projection of a product, denormalized
// with the seller's username.
type ProductResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImgURL      *string   `json:"img_url,omitempty"`
	Price       float64   `json:"price"`
	Seller      string    `json:"seller"`
	DateCreated time.Time `json:"date_created"`
}

// ProductFromModel projects a product with its seller name.
func ProductFromModel(p *models.Product, seller string) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImgURL:      p.ImgURL,
		Price:       p.Price,
		Seller:      seller,
		DateCreated: p.CreatedAt,
	}
}
