package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marshallshelly/snapcart/internal/dto"
	"github.com/marshallshelly/snapcart/internal/middleware"
	"github.com/marshallshelly/snapcart/internal/store"
)

func (h *Handler) listPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	posts, err := h.store.Posts().Feed(c.Request.Context(), limit)
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

func (h *Handler) getPost(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := h.store.Posts().ByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	view, err := h.projections.Post(c.Request.Context(), post)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

type createPostRequest struct {
	Title   string  `json:"title" binding:"required"`
	Caption *string `json:"caption"`
	ImgURL  string  `json:"img_url" binding:"required"`
}

func (h *Handler) createPost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		notOK(c, http.StatusBadRequest, "invalid post payload: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	post, err := h.store.Posts().Create(c.Request.Context(), store.NewPost{
		Title:   req.Title,
		Caption: req.Caption,
		ImgURL:  req.ImgURL,
		UserID:  user.ID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, dto.PostFromModel(post, user.Username, 0))
}

type updatePostRequest struct {
	Title   *string `json:"title"`
	Caption *string `json:"caption"`
	ImgURL  *string `json:"img_url"`
}

func (h *Handler) updatePost(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		notOK(c, http.StatusBadRequest, "invalid post payload: "+err.Error())
		return
	}

	if !h.requireOwnPost(c, id) {
		return
	}

	updated, err := h.store.Posts().Update(c.Request.Context(), id, store.PostUpdate{
		Title:   req.Title,
		Caption: req.Caption,
		ImgURL:  req.ImgURL,
	})
	if err != nil {
		fail(c, err)
		return
	}

	view, err := h.projections.Post(c.Request.Context(), updated)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

func (h *Handler) deletePost(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if !h.requireOwnPost(c, id) {
		return
	}

	if err := h.store.Posts().Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) likePost(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid post id")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.store.Relationships().Like(c.Request.Context(), user.ID, id); err != nil {
		fail(c, err)
		return
	}

	likes, err := h.store.Relationships().LikeCount(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"post_id": id, "likes": likes})
}

func (h *Handler) unlikePost(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid post id")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.store.Relationships().Unlike(c.Request.Context(), user.ID, id); err != nil {
		fail(c, err)
		return
	}

	likes, err := h.store.Relationships().LikeCount(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"post_id": id, "likes": likes})
}

func (h *Handler) listLikers(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid post id")
		return
	}

	// 404 for likes of a post that does not exist, not an empty list.
	if _, err := h.store.Posts().ByID(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	likers, err := h.store.Relationships().Likers(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	views := make([]dto.UserResponse, 0, len(likers))
	for i := range likers {
		views = append(views, dto.UserFromModel(&likers[i]))
	}
	ok(c, http.StatusOK, views)
}

// requireOwnPost enforces that the caller authored the post. On
// failure it writes the response and returns false.
func (h *Handler) requireOwnPost(c *gin.Context, id int) bool {
	post, err := h.store.Posts().ByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return false
	}

	user := middleware.CurrentUser(c)
	if post.UserID != user.ID {
		notOK(c, http.StatusForbidden, "not the author of this post")
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}
