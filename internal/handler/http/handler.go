// Package http exposes the snapcart REST API over gin.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/marshallshelly/snapcart/internal/middleware"
	"github.com/marshallshelly/snapcart/internal/service"
	"github.com/marshallshelly/snapcart/internal/store"
)

// Handler holds the dependencies shared by all route handlers.
type Handler struct {
	store       *store.Store
	auth        *service.AuthService
	projections *service.ProjectionService
}

// NewHandler wires a Handler over the store.
func NewHandler(st *store.Store) *Handler {
	return &Handler{
		store:       st,
		auth:        service.NewAuthService(st.Users()),
		projections: service.NewProjectionService(st.Users(), st.Relationships()),
	}
}

// Router builds the gin engine with all routes registered.
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.POST("/signup", h.signup)
		api.POST("/login", h.login)

		api.GET("/posts", h.listPosts)
		api.GET("/posts/:id", h.getPost)
		api.GET("/posts/:id/likes", h.listLikers)

		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)

		api.GET("/users/:username", h.getUser)
		api.GET("/users/:username/posts", h.listUserPosts)
		api.GET("/users/:username/products", h.listUserProducts)
		api.GET("/users/:username/followers", h.listFollowers)
		api.GET("/users/:username/following", h.listFollowing)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth(h.auth))
	{
		authed.GET("/me", h.me)
		authed.DELETE("/me", h.deleteMe)
		authed.PATCH("/me", h.updateMe)

		authed.POST("/posts", h.createPost)
		authed.PATCH("/posts/:id", h.updatePost)
		authed.DELETE("/posts/:id", h.deletePost)
		authed.POST("/posts/:id/like", h.likePost)
		authed.DELETE("/posts/:id/like", h.unlikePost)

		authed.POST("/products", h.createProduct)
		authed.PATCH("/products/:id", h.updateProduct)
		authed.DELETE("/products/:id", h.deleteProduct)

		authed.GET("/cart", h.getCart)
		authed.POST("/cart/:productID", h.addToCart)
		authed.DELETE("/cart/:productID", h.removeFromCart)
		authed.DELETE("/cart", h.clearCart)

		authed.POST("/users/:username/follow", h.follow)
		authed.DELETE("/users/:username/follow", h.unfollow)
	}

	return router
}

func (h *Handler) health(c *gin.Context) {
	ok(c, 200, gin.H{"service": "snapcart"})
}
