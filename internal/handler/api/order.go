package api

import (
	"errors"
	"log/slog"
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	resdto "storefront/internal/handler/dto/response"
	"storefront/internal/handler/middleware"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderUseCase usecase.OrderUseCase
	cartUseCase  usecase.CartUseCase
}

func NewOrderHandler(orderUseCase usecase.OrderUseCase, cartUseCase usecase.CartUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
		cartUseCase:  cartUseCase,
	}
}

// @Summary Create order
// @Description Assemble the checkout into a persisted, priced order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOrderRequest true "Checkout request"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /order/create [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	var req reqdto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request format"})
		return
	}

	items := make([]usecase.OrderItemInput, len(req.Items))
	for i, it := range req.Items {
		items[i] = usecase.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity}
	}

	o, err := h.orderUseCase.CreateOrder(c.Request.Context(), userID.String(), req.AddressID, items)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Order has no items"})
		case errors.Is(err, usecase.ErrMissingAddress):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Shipping address required"})
		case errors.Is(err, usecase.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Quantities must be positive integers"})
		case errors.Is(err, usecase.ErrInvalidProductID):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "productId is required for every item"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Order could not be created, please try again"})
		}
		return
	}

	// Clearing the cart is a separate, retryable step from order creation;
	// the order is already persisted, so a failure here must not fail the
	// checkout response.
	if err := h.cartUseCase.Clear(c.Request.Context(), userID.String()); err != nil {
		slog.Warn("cart clear after checkout failed",
			"user_id", userID.String(),
			"order_id", o.ID,
			"error", err.Error(),
		)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   o,
	})
}

// @Summary List my orders
// @Description Role-filtered order listing: customers see their own orders, seller/admin see all
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /order/get-orders [get]
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}

	views, err := h.orderUseCase.ListOrders(c.Request.Context(), userID.String(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  resdto.FromOrderViews(views),
	})
}
