package public

import (
	"strconv"

	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 获取在售商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.Catalog.ListProducts()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load products", err)
		return
	}
	response.Success(c, gin.H{"products": products})
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c, c.Param("product_id"))
	if !ok {
		return
	}
	product, err := h.Catalog.GetProduct(id)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	if product == nil {
		response.NotFound(c, "product not found")
		return
	}
	response.Success(c, gin.H{"product": product})
}

func parseProductID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return 0, false
	}
	return uint(id), true
}
