package store

import (
	"context"
	"fmt"

	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/pkg/builder"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// PostStore persists image posts.
type PostStore struct {
	db *builder.DB
}

// NewPost carries the fields needed to publish a post.
type NewPost struct {
	Title   string
	Caption *string
	ImgURL  string
	UserID  int
}

// Create publishes a post for an existing user. A missing author surfaces
// as runtime.ErrForeignKeyViolation.
func (s *PostStore) Create(ctx context.Context, params NewPost) (*models.Post, error) {
	rows, err := builder.Insert[models.Post](s.db).
		Values(models.Post{
			Title:   params.Title,
			Caption: params.Caption,
			ImgURL:  params.ImgURL,
			UserID:  params.UserID,
		}).
		ExecReturning(ctx)
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// ByID fetches a post by primary key.
func (s *PostStore) ByID(ctx context.Context, id int) (*models.Post, error) {
	post, err := builder.Select[models.Post](s.db).
		Where(builder.Eq("id", id)).
		First(ctx)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ByAuthor returns all posts by one user, newest first.
func (s *PostStore) ByAuthor(ctx context.Context, userID int) ([]models.Post, error) {
	return builder.Select[models.Post](s.db).
		Where(builder.Eq("user_id", userID)).
		OrderByDesc("created_at").
		All(ctx)
}

// Feed returns all posts newest first, optionally limited.
func (s *PostStore) Feed(ctx context.Context, limit int) ([]models.Post, error) {
	q := builder.Select[models.Post](s.db).OrderByDesc("created_at")
	if limit > 0 {
		q.Limit(limit)
	}
	return q.All(ctx)
}

// PostUpdate carries the editable post fields. Nil pointers leave the
// column untouched.
type PostUpdate struct {
	Title   *string
	Caption *string
	ImgURL  *string
}

// Update edits a post's title, caption or image.
func (s *PostStore) Update(ctx context.Context, id int, params PostUpdate) (*models.Post, error) {
	if params.Title == nil && params.Caption == nil && params.ImgURL == nil {
		return s.ByID(ctx, id)
	}

	q := builder.Update[models.Post](s.db)
	if params.Title != nil {
		q.Set("title", *params.Title)
	}
	if params.Caption != nil {
		q.Set("caption", params.Caption)
	}
	if params.ImgURL != nil {
		q.Set("img_url", *params.ImgURL)
	}

	rows, err := q.
		Where(builder.Eq("id", id)).
		ExecReturning(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("post %d: %w", id, runtime.ErrNotFound)
	}
	return &rows[0], nil
}

// Delete removes a post. Its likes are removed by the database cascade.
func (s *PostStore) Delete(ctx context.Context, id int) error {
	_, err := builder.Delete[models.Post](s.db).
		Where(builder.Eq("id", id)).
		Exec(ctx)
	return err
}
