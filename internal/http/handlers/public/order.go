package public

import (
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListMyOrders 查询当前客户订单（按创建时间倒序）
func (h *Handler) ListMyOrders(c *gin.Context) {
	sess := h.currentSession(c)
	orders := h.Orders.ListOrdersByCustomer(sess.Customer)
	response.Success(c, gin.H{"orders": orders})
}

// GetMyOrder 查询当前客户的单个订单
func (h *Handler) GetMyOrder(c *gin.Context) {
	sess := h.currentSession(c)
	order, err := h.Orders.GetOrderByID(c.Param("order_id"))
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "failed to load order")
		return
	}
	// 只允许查询本人订单
	if order.CustomerID != sess.Customer {
		response.NotFound(c, "order not found")
		return
	}
	response.Success(c, gin.H{"order": order})
}
