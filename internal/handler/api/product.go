package api

import (
	"net/http"

	"storefront/internal/domain/catalog"
	"storefront/internal/handler/httperr"
	"storefront/internal/infra"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productRepo usecase.ProductRepository
}

func NewProductHandler(productRepo usecase.ProductRepository) *ProductHandler {
	return &ProductHandler{
		productRepo: productRepo,
	}
}

// @Summary List products
// @Description List catalog products, optionally filtered by category id
// @Tags products
// @Produce json
// @Param category query string false "Category id"
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /product/list [get]
func (h *ProductHandler) List(c *gin.Context) {
	var (
		products []*catalog.Product
		err      error
	)
	if categoryID := c.Query("category"); categoryID != "" {
		products, err = h.productRepo.ListByCategory(c.Request.Context(), categoryID)
	} else {
		products, err = h.productRepo.List(c.Request.Context())
	}
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"products": products,
	})
}

// @Summary Get product
// @Description Get one product by id
// @Tags products
// @Produce json
// @Param id path string true "Product id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /product/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.productRepo.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		// The product is the direct subject here, so absence is a 404, not a
		// placeholder.
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Product not found",
			})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
	})
}
