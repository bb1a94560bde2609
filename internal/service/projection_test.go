package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// fakeDirectory is an in-memory UserDirectory that counts lookups.
type fakeDirectory struct {
	users   map[int]*models.User
	lookups int
}

func (f *fakeDirectory) ByID(_ context.Context, id int) (*models.User, error) {
	f.lookups++
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, runtime.ErrNotFound
}

// fakeLikeCounter serves like counts from a fixed map.
type fakeLikeCounter struct {
	counts map[int]int64
}

func (f *fakeLikeCounter) LikeCount(_ context.Context, postID int) (int64, error) {
	return f.counts[postID], nil
}

func TestProjectionService_Post(t *testing.T) {
	users := &fakeDirectory{users: map[int]*models.User{
		1: {ID: 1, Username: "alice"},
	}}
	likes := &fakeLikeCounter{counts: map[int]int64{1: 1}}
	projections := NewProjectionService(users, likes)
	ctx := context.Background()

	post := &models.Post{ID: 1, Title: "Hi", ImgURL: "img.png", UserID: 1}

	view, err := projections.Post(ctx, post)
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Author)
	assert.EqualValues(t, 1, view.Likes)
	assert.Equal(t, "Hi", view.Title)
	assert.Nil(t, view.Caption)

	// The count is derived per read, so the next projection sees the
	// unlike immediately.
	likes.counts[1] = 0
	view, err = projections.Post(ctx, post)
	require.NoError(t, err)
	assert.EqualValues(t, 0, view.Likes)
}

func TestProjectionService_Post_UnknownAuthor(t *testing.T) {
	projections := NewProjectionService(
		&fakeDirectory{users: map[int]*models.User{}},
		&fakeLikeCounter{},
	)

	_, err := projections.Post(context.Background(), &models.Post{ID: 7, UserID: 42})
	assert.ErrorIs(t, err, runtime.ErrNotFound)
}

func TestProjectionService_Posts_CachesAuthors(t *testing.T) {
	users := &fakeDirectory{users: map[int]*models.User{
		1: {ID: 1, Username: "alice"},
		2: {ID: 2, Username: "bob"},
	}}
	likes := &fakeLikeCounter{counts: map[int]int64{10: 3, 12: 1}}
	projections := NewProjectionService(users, likes)

	views, err := projections.Posts(context.Background(), []models.Post{
		{ID: 10, UserID: 1},
		{ID: 11, UserID: 1},
		{ID: 12, UserID: 2},
	})
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "alice", views[0].Author)
	assert.Equal(t, "alice", views[1].Author)
	assert.Equal(t, "bob", views[2].Author)
	assert.EqualValues(t, 3, views[0].Likes)
	assert.EqualValues(t, 0, views[1].Likes)
	assert.EqualValues(t, 1, views[2].Likes)

	// Three posts, two distinct authors: one lookup per author.
	assert.Equal(t, 2, users.lookups)
}

func TestProjectionService_Products(t *testing.T) {
	users := &fakeDirectory{users: map[int]*models.User{
		1: {ID: 1, Username: "carol"},
	}}
	projections := NewProjectionService(users, &fakeLikeCounter{})

	views, err := projections.Products(context.Background(), []models.Product{
		{ID: 5, Name: "mug", Price: 9.99, SellerID: 1},
		{ID: 6, Name: "shirt", Price: 19.99, SellerID: 1},
	})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "carol", views[0].Seller)
	assert.Equal(t, "carol", views[1].Seller)
	assert.Equal(t, 1, users.lookups)

	_, err = projections.Product(context.Background(), &models.Product{ID: 9, SellerID: 99})
	assert.ErrorIs(t, err, runtime.ErrNotFound)
}
