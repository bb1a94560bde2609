package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marshallshelly/snapcart/internal/dto"
	"github.com/marshallshelly/snapcart/internal/middleware"
	"github.com/marshallshelly/snapcart/internal/store"
)

func (h *Handler) listProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	products, err := h.store.Products().Catalog(c.Request.Context(), limit)
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

func (h *Handler) getProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.store.Products().ByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	view, err := h.projections.Product(c.Request.Context(), product)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

type createProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	ImgURL      *string `json:"img_url"`
	Price       float64 `json:"price"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		notOK(c, http.StatusBadRequest, "invalid product payload: "+err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	product, err := h.store.Products().Create(c.Request.Context(), store.NewProduct{
		Name:        req.Name,
		Description: req.Description,
		ImgURL:      req.ImgURL,
		Price:       req.Price,
		SellerID:    user.ID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, dto.ProductFromModel(product, user.Username))
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ImgURL      *string  `json:"img_url"`
	Price       *float64 `json:"price"`
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		notOK(c, http.StatusBadRequest, "invalid product payload: "+err.Error())
		return
	}

	if !h.requireOwnProduct(c, id) {
		return
	}

	product, err := h.store.Products().Update(c.Request.Context(), id, store.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		ImgURL:      req.ImgURL,
		Price:       req.Price,
	})
	if err != nil {
		fail(c, err)
		return
	}

	view, err := h.projections.Product(c.Request.Context(), product)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, view)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		notOK(c, http.StatusBadRequest, "invalid product id")
		return
	}

	if !h.requireOwnProduct(c, id) {
		return
	}

	if err := h.store.Products().Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": id})
}

// requireOwnProduct enforces that the caller listed the product. On
// failure it writes the response and returns false.
func (h *Handler) requireOwnProduct(c *gin.Context, id int) bool {
	product, err := h.store.Products().ByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return false
	}

	user := middleware.CurrentUser(c)
	if product.SellerID != user.ID {
		notOK(c, http.StatusForbidden, "not the seller of this product")
		return false
	}
	return true
}
