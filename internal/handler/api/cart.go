package api

import (
	"errors"
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/handler/middleware"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartUseCase usecase.CartUseCase
}

func NewCartHandler(cartUseCase usecase.CartUseCase) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
	}
}

// @Summary Get cart
// @Description Get the current user's cart reconciled against live catalog state
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /cart/get [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	view, err := h.cartUseCase.Get(c.Request.Context(), userID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    view.Lines,
		"count":   view.Count,
	})
}

// @Summary Add to cart
// @Description Increment the quantity of a product in the current user's cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddToCartRequest true "Product"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /cart/add [post]
func (h *CartHandler) Add(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	var req reqdto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
		return
	}

	items, err := h.cartUseCase.Add(c.Request.Context(), userID.String(), req.ProductID, 1)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"cartItems": items,
	})
}

// @Summary Update cart
// @Description Set an absolute quantity; zero removes the entry
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateCartRequest true "Product and quantity"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /cart/update [post]
func (h *CartHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	var req reqdto.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
		return
	}

	items, err := h.cartUseCase.SetQuantity(c.Request.Context(), userID.String(), req.ProductID, *req.Quantity)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"cartItems": items,
	})
}

// @Summary Purge a deleted product from all carts
// @Description Strip the given product from every user's cart in one bulk operation
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RemoveDeletedProductRequest true "Product"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 403 {object} map[string]any
// @Router /cart/remove-deleted-product [post]
func (h *CartHandler) RemoveDeletedProduct(c *gin.Context) {
	var req reqdto.RemoveDeletedProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "productId is required"})
		return
	}

	modified, err := h.cartUseCase.RemoveProductEverywhere(c.Request.Context(), req.ProductID)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"modifiedCount": modified,
	})
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidProductID):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "productId is required"})
	case errors.Is(err, usecase.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Quantity must be a non-negative integer"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
	}
}
