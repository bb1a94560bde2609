package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marshallshelly/snapcart/internal/dto"
	"github.com/marshallshelly/snapcart/internal/middleware"
	"github.com/marshallshelly/snapcart/internal/models"
)

func (h *Handler) getUser(c *gin.Context) {
	user, err := h.store.Users().ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	ctx := c.Request.Context()
	followers, err := h.store.Relationships().FollowerCount(ctx, user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	following, err := h.store.Relationships().FollowingCount(ctx, user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, gin.H{
		"user":      dto.UserFromModel(user),
		"followers": followers,
		"following": following,
	})
}

func (h *Handler) listUserPosts(c *gin.Context) {
	user, err := h.store.Users().ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	posts, err := h.store.Posts().ByAuthor(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	views, err := h.projections.Posts(c.Request.Context(), posts)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, views)
}

func (h *Handler) listUserProducts(c *gin.Context) {
	user, err := h.store.Users().ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	products, err := h.store.Products().BySeller(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	views, err := h.projections.Products(c.Request.Context(), products)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, views)
}

func (h *Handler) listFollowers(c *gin.Context) {
	user, err := h.store.Users().ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	followers, err := h.store.Relationships().Followers(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, userViews(followers))
}

func (h *Handler) listFollowing(c *gin.Context) {
	user, err := h.store.Users().ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	following, err := h.store.Relationships().Following(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, userViews(following))
}

func (h *Handler) follow(c *gin.Context) {
	target, err := h.store.Users().ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.store.Relationships().Follow(c.Request.Context(), user.ID, target.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"following": target.Username})
}

func (h *Handler) unfollow(c *gin.Context) {
	target, err := h.store.Users().ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.store.Relationships().Unfollow(c.Request.Context(), user.ID, target.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"unfollowed": target.Username})
}

func userViews(users []models.User) []dto.UserResponse {
	views := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		views = append(views, dto.UserFromModel(&users[i]))
	}
	return views
}
