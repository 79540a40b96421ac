package public

import (
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/models"

	"github.com/gin-gonic/gin"
)

// ShippingRequest 收货信息请求
type ShippingRequest struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// PaymentMethodRequest 支付方式请求
type PaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

// GetCheckoutState 获取当前结算状态
func (h *Handler) GetCheckoutState(c *gin.Context) {
	sess := h.currentSession(c)
	response.Success(c, sess.Checkout.State())
}

// SubmitShipping 提交收货信息
func (h *Handler) SubmitShipping(c *gin.Context) {
	sess := h.currentSession(c)
	var req ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	state, err := sess.Checkout.SubmitShipping(models.Address{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to submit shipping info")
		return
	}
	response.Success(c, state)
}

// SelectPaymentMethod 选择支付方式
func (h *Handler) SelectPaymentMethod(c *gin.Context) {
	sess := h.currentSession(c)
	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	state, err := sess.Checkout.SelectPaymentMethod(req.Method)
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to select payment method")
		return
	}
	response.Success(c, state)
}

// PlaceOrder 下单
func (h *Handler) PlaceOrder(c *gin.Context) {
	sess := h.currentSession(c)
	order, err := sess.Checkout.PlaceOrder()
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "failed to place order")
		return
	}
	response.SuccessWithMsg(c, "order placed", gin.H{"order": order})
}

// ResetCheckout 重置结算流程（开始新一轮结算）
func (h *Handler) ResetCheckout(c *gin.Context) {
	sess := h.currentSession(c)
	response.Success(c, sess.Checkout.Reset())
}
