package admin

import (
	"errors"
	"strconv"

	"github.com/storefront-next/internal/http/handlers/shared"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListOrders 查询全部订单（分页，按创建时间倒序）
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	all := h.Orders.ListAllOrders()
	start, end := shared.PageWindow(len(all), page, pageSize)
	response.SuccessWithPage(c, gin.H{"orders": all[start:end]},
		shared.BuildPagination(page, pageSize, int64(len(all))))
}

// GetOrder 查询订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Orders.GetOrderByID(c.Param("order_id"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		shared.RespondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	response.Success(c, gin.H{"order": order})
}

// UpdateOrderStatus 推进订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.Orders.UpdateStatus(c.Param("order_id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, "order not found")
		case errors.Is(err, service.ErrInvalidTransition):
			response.Conflict(c, "status transition not allowed")
		default:
			shared.RespondError(c, response.CodeInternal, "failed to update order status", err)
		}
		return
	}
	response.Success(c, gin.H{"order": order})
}
