package public

import (
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistItemRequest 收藏请求
type WishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取收藏夹
func (h *Handler) GetWishlist(c *gin.Context) {
	sess := h.currentSession(c)
	response.Success(c, gin.H{"items": sess.Wishlist.Items()})
}

// AddWishlistItem 收藏商品（重复收藏为空操作）
func (h *Handler) AddWishlistItem(c *gin.Context) {
	sess := h.currentSession(c)
	var req WishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
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

	items, err := sess.Wishlist.Add(product)
	if err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "failed to update wishlist")
		return
	}
	response.Success(c, gin.H{"items": items})
}

// DeleteWishlistItem 取消收藏（幂等）
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	sess := h.currentSession(c)
	productID, ok := parseProductID(c, c.Param("product_id"))
	if !ok {
		return
	}
	items := sess.Wishlist.Remove(productID)
	response.Success(c, gin.H{"items": items})
}

// MoveWishlistItemToCart 收藏转购物车
func (h *Handler) MoveWishlistItemToCart(c *gin.Context) {
	sess := h.currentSession(c)
	productID, ok := parseProductID(c, c.Param("product_id"))
	if !ok {
		return
	}
	if err := sess.Wishlist.MoveToCart(productID, sess.Cart); err != nil {
		respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "failed to move item to cart")
		return
	}
	response.Success(c, gin.H{
		"wishlist": sess.Wishlist.Items(),
		"cart": CartResponse{
			Items:  sess.Cart.Items(),
			Totals: sess.Cart.Totals(),
		},
	})
}
