package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marshallshelly/snapcart/internal/dto"
	"github.com/marshallshelly/snapcart/internal/middleware"
	"github.com/marshallshelly/snapcart/internal/store"
)

type signupRequest struct {
	Username string  `json:"username" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	ImgURL   *string `json:"img_url"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		notOK(c, http.StatusBadRequest, "invalid signup payload: "+err.Error())
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), store.NewUser{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		ImgURL:   req.ImgURL,
	})
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, dto.UserWithToken(user))
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		notOK(c, http.StatusBadRequest, "invalid login payload: "+err.Error())
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, dto.UserWithToken(user))
}

func (h *Handler) me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	ok(c, http.StatusOK, dto.UserWithToken(user))
}

type updateMeRequest struct {
	ImgURL *string `json:"img_url"`
}

func (h *Handler) updateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		notOK(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	updated, err := h.store.Users().UpdateProfile(c.Request.Context(), user.ID, req.ImgURL)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, dto.UserFromModel(updated))
}

func (h *Handler) deleteMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.store.Users().Delete(c.Request.Context(), user.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": user.Username})
}
