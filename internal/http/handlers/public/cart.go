package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加入购物车请求
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// CartQuantityRequest 修改数量请求
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse 购物车响应（明细 + 实时合计）
type CartResponse struct {
	Items  []models.CartItem `json:"items"`
	Totals pricing.Totals    `json:"totals"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	sess := h.currentSession(c)
	response.Success(c, CartResponse{
		Items:  sess.Cart.Items(),
		Totals: sess.Cart.Totals(),
	})
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	sess := h.currentSession(c)
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := h.Catalog.GetProduct(req.ProductID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load product", err)
		return
	}
	if product == nil {
		response.NotFound(c, "product not found")
		return
	}

	items, err := sess.Cart.AddItem(product, quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}
	response.Success(c, CartResponse{Items: items, Totals: sess.Cart.Totals()})
}

// UpdateCartItem 修改购物车行数量（0 或负数等价于移除）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	sess := h.currentSession(c)
	productID, ok := parseProductID(c, c.Param("product_id"))
	if !ok {
		return
	}
	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	items, err := sess.Cart.UpdateQuantity(productID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "failed to update cart")
		return
	}
	response.Success(c, CartResponse{Items: items, Totals: sess.Cart.Totals()})
}

// DeleteCartItem 移除购物车行（幂等）
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sess := h.currentSession(c)
	productID, ok := parseProductID(c, c.Param("product_id"))
	if !ok {
		return
	}
	items := sess.Cart.RemoveItem(productID)
	response.Success(c, CartResponse{Items: items, Totals: sess.Cart.Totals()})
}

// ClearCart 清空购物车（幂等）
func (h *Handler) ClearCart(c *gin.Context) {
	sess := h.currentSession(c)
	sess.Cart.Clear()
	response.Success(c, CartResponse{
		Items:  sess.Cart.Items(),
		Totals: sess.Cart.Totals(),
	})
}
