package store

import (
	"context"
	"errors"

	"github.com/marshallshelly/snapcart/internal/models"
	"github.com/marshallshelly/snapcart/pkg/builder"
	"github.com/marshallshelly/snapcart/pkg/runtime"
)

// RelationshipManager maintains the like, cart and follow associations.
// All mutations are idempotent: repeating an add or remove leaves the
// association set unchanged.
type RelationshipManager struct {
	db *builder.DB
}

// Follow records a follower -> followed edge. Following a user twice is a
// no-op; following yourself returns ErrSelfFollow.
func (m *RelationshipManager) Follow(ctx context.Context, followerID, followedID int) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	_, err := builder.Insert[models.Follow](m.db).
		Values(models.Follow{FollowerID: followerID, FollowedID: followedID}).
		OnConflictDoNothing("follower_id", "followed_id").
		Exec(ctx)
	if errors.Is(err, runtime.ErrCheckViolation) {
		return ErrSelfFollow
	}
	return err
}

// Unfollow removes a follow edge. Removing an absent edge is a no-op.
func (m *RelationshipManager) Unfollow(ctx context.Context, followerID, followedID int) error {
	_, err := builder.Delete[models.Follow](m.db).
		Where(builder.Eq("follower_id", followerID)).
		And(builder.Eq("followed_id", followedID)).
		Exec(ctx)
	return err
}

// IsFollowing reports whether follower follows followed.
func (m *RelationshipManager) IsFollowing(ctx context.Context, followerID, followedID int) (bool, error) {
	return builder.Select[models.Follow](m.db).
		Where(builder.Eq("follower_id", followerID)).
		And(builder.Eq("followed_id", followedID)).
		Exists(ctx)
}

// Following returns the users that userID follows.
func (m *RelationshipManager) Following(ctx context.Context, userID int) ([]models.User, error) {
	return builder.Select[models.User](m.db).
		Columns("users.*").
		InnerJoin("follows", "follows.followed_id = users.id").
		Where(builder.Eq("follows.follower_id", userID)).
		OrderByAsc("users.id").
		All(ctx)
}

// Followers returns the users that follow userID.
func (m *RelationshipManager) Followers(ctx context.Context, userID int) ([]models.User, error) {
	return builder.Select[models.User](m.db).
		Columns("users.*").
		InnerJoin("follows", "follows.follower_id = users.id").
		Where(builder.Eq("follows.followed_id", userID)).
		OrderByAsc("users.id").
		All(ctx)
}

// FollowingCount returns how many users userID follows.
func (m *RelationshipManager) FollowingCount(ctx context.Context, userID int) (int64, error) {
	return builder.Select[models.Follow](m.db).
		Where(builder.Eq("follower_id", userID)).
		Count(ctx)
}

// FollowerCount returns how many users follow userID.
func (m *RelationshipManager) FollowerCount(ctx context.Context, userID int) (int64, error) {
	return builder.Select[models.Follow](m.db).
		Where(builder.Eq("followed_id", userID)).
		Count(ctx)
}

// Like records that userID liked postID. Liking twice is a no-op; the
// composite primary key guarantees at most one row per pair.
func (m *RelationshipManager) Like(ctx context.Context, userID, postID int) error {
	_, err := builder.Insert[models.Like](m.db).
		Values(models.Like{UserID: userID, PostID: postID}).
		OnConflictDoNothing("user_id", "post_id").
		Exec(ctx)
	return err
}

// Unlike removes a like. Removing an absent like is a no-op.
func (m *RelationshipManager) Unlike(ctx context.Context, userID, postID int) error {
	_, err := builder.Delete[models.Like](m.db).
		Where(builder.Eq("user_id", userID)).
		And(builder.Eq("post_id", postID)).
		Exec(ctx)
	return err
}

// HasLiked reports whether userID has liked postID.
func (m *RelationshipManager) HasLiked(ctx context.Context, userID, postID int) (bool, error) {
	return builder.Select[models.Like](m.db).
		Where(builder.Eq("user_id", userID)).
		And(builder.Eq("post_id", postID)).
		Exists(ctx)
}

// Likers returns the users who liked postID.
func (m *RelationshipManager) Likers(ctx context.Context, postID int) ([]models.User, error) {
	return builder.Select[models.User](m.db).
		Columns("users.*").
		InnerJoin("likes", "likes.user_id = users.id").
		Where(builder.Eq("likes.post_id", postID)).
		OrderByAsc("users.id").
		All(ctx)
}

// LikeCount returns the number of likes on postID.
func (m *RelationshipManager) LikeCount(ctx context.Context, postID int) (int64, error) {
	return builder.Select[models.Like](m.db).
		Where(builder.Eq("post_id", postID)).
		Count(ctx)
}

// AddToCart places productID in userID's cart. Adding twice is a no-op.
func (m *RelationshipManager) AddToCart(ctx context.Context, userID, productID int) error {
	_, err := builder.Insert[models.CartItem](m.db).
		Values(models.CartItem{UserID: userID, ProductID: productID}).
		OnConflictDoNothing("user_id", "product_id").
		Exec(ctx)
	return err
}

// RemoveFromCart takes productID out of userID's cart. Removing an
// absent item is a no-op.
func (m *RelationshipManager) RemoveFromCart(ctx context.Context, userID, productID int) error {
	_, err := builder.Delete[models.CartItem](m.db).
		Where(builder.Eq("user_id", userID)).
		And(builder.Eq("product_id", productID)).
		Exec(ctx)
	return err
}

// Cart returns the products currently in userID's cart, oldest first.
func (m *RelationshipManager) Cart(ctx context.Context, userID int) ([]models.Product, error) {
	return builder.Select[models.Product](m.db).
		Columns("products.*").
		InnerJoin("cart_items", "cart_items.product_id = products.id").
		Where(builder.Eq("cart_items.user_id", userID)).
		OrderByAsc("cart_items.created_at").
		All(ctx)
}

// ClearCart empties userID's cart.
func (m *RelationshipManager) ClearCart(ctx context.Context, userID int) error {
	_, err := builder.Delete[models.CartItem](m.db).
		Where(builder.Eq("user_id", userID)).
		Exec(ctx)
	return err
}
