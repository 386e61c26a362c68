package api

import (
	"net/http"

	reqdto "storefront/internal/handler/dto/request"
	"storefront/internal/handler/httperr"
	"storefront/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryCache usecase.CategoryCache
}

func NewCategoryHandler(categoryCache usecase.CategoryCache) *CategoryHandler {
	return &CategoryHandler{
		categoryCache: categoryCache,
	}
}

// @Summary List categories
// @Description List active categories, served from the in-process cache when fresh
// @Tags categories
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router /category/list [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, cached, err := h.categoryCache.List(c.Request.Context(), false)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
		"cached":  cached,
	})
}

// @Summary Category admin actions
// @Description Currently supports {"action":"clearCache"} to invalidate the category cache
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CategoryActionRequest true "Action"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /category/list [post]
func (h *CategoryHandler) Action(c *gin.Context) {
	var req reqdto.CategoryActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request format",
		})
		return
	}

	if req.Action != reqdto.ActionClearCache {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Unknown action: " + req.Action,
		})
		return
	}

	h.categoryCache.Invalidate()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Category cache cleared",
	})
}
