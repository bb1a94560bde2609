package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marshallshelly/snapcart/internal/middleware"
)

func (h *Handler) getCart(c *gin.Context) {
	user := middleware.CurrentUser(c)

	products, err := h.store.Relationships().Cart(c.Request.Context(), user.ID)
	if err != nil {
		fail(c, err)
		return
	}

	views, err := h.projections.Products(c.Request.Context(), products)
	if err != nil {
		fail(c, err)
		return
	}

	var total float64
	for _, v := range views {
		total += v.Price
	}
	ok(c, http.StatusOK, gin.H{"items": views, "total": total})
}

func (h *Handler) addToCart(c *gin.Context) {
	id, err := pathID(c, "productID")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid product id")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.store.Relationships().AddToCart(c.Request.Context(), user.ID, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"added": id})
}

func (h *Handler) removeFromCart(c *gin.Context) {
	id, err := pathID(c, "productID")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid product id")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.store.Relationships().RemoveFromCart(c.Request.Context(), user.ID, id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"removed": id})
}

func (h *Handler) clearCart(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.store.Relationships().ClearCart(c.Request.Context(), user.ID); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"cleared": true})
}
