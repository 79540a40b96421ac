package service

import (
	"strings"
	"sync"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
)

// CheckoutState 结算流程当前状态
type CheckoutState struct {
	Step          string          `json:"step"`
	Address       *models.Address `json:"address,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	OrderID       string          `json:"order_id,omitempty"`
}

// CheckoutService 结算状态机：shipping → payment → confirmed。
// 每个会话一个实例，流程内数据不持久化，下单成功后归档到订单仓库。
type CheckoutService struct {
	customerID string
	cart       *CartService
	orders     *OrderService
	confirmer  PaymentConfirmer

	mu      sync.Mutex
	step    string
	address *models.Address
	method  string
	orderID string
}

// NewCheckoutService 创建结算服务（起始步骤为 shipping）
func NewCheckoutService(customerID string, cart *CartService, orders *OrderService, confirmer PaymentConfirmer) *CheckoutService {
	return &CheckoutService{
		customerID: customerID,
		cart:       cart,
		orders:     orders,
		confirmer:  confirmer,
		step:       constants.CheckoutStepShipping,
	}
}

// State 返回当前结算状态快照
func (s *CheckoutService) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// SubmitShipping 提交收货信息并推进到支付步骤
func (s *CheckoutService) SubmitShipping(address models.Address) (CheckoutState, error) {
	if err := validateAddress(address); err != nil {
		return CheckoutState{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step == constants.CheckoutStepConfirmed {
		return CheckoutState{}, ErrCheckoutStepInvalid
	}
	addr := address
	s.address = &addr
	s.step = constants.CheckoutStepPayment
	return s.stateLocked(), nil
}

// SelectPaymentMethod 选择支付方式（仅支付步骤可用）
func (s *CheckoutService) SelectPaymentMethod(method string) (CheckoutState, error) {
	if !isValidPaymentMethod(method) {
		return CheckoutState{}, ErrPaymentMethodInvalid
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != constants.CheckoutStepPayment {
		return CheckoutState{}, ErrCheckoutStepInvalid
	}
	s.method = method
	return s.stateLocked(), nil
}

// PlaceOrder 下单：冻结购物车为订单、清空购物车并推进到 confirmed。
// 支付确认返回 failed 时下单中止，不产生订单。
func (s *CheckoutService) PlaceOrder() (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != constants.CheckoutStepPayment {
		return nil, ErrCheckoutStepInvalid
	}
	// 下单前重新校验收货信息
	if s.address == nil {
		return nil, ErrValidation
	}
	if err := validateAddress(*s.address); err != nil {
		return nil, err
	}
	if s.method == "" {
		return nil, ErrPaymentMethodInvalid
	}

	// 明细与合计取自同一份快照，并发修改购物车不会让两者错位
	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	totals := pricing.TotalsFor(items)

	paymentStatus := constants.PaymentStatusCompleted
	if s.confirmer != nil {
		status, err := s.confirmer.Confirm(s.customerID, s.method, totals.Total)
		if err != nil {
			logger.Errorw("payment_confirm_failed", "customer_id", s.customerID, "error", err)
			return nil, ErrPaymentDeclined
		}
		paymentStatus = status
	}
	if paymentStatus == constants.PaymentStatusFailed {
		return nil, ErrPaymentDeclined
	}

	orderStatus := constants.OrderStatusPending
	if paymentStatus == constants.PaymentStatusCompleted {
		orderStatus = constants.OrderStatusConfirmed
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Image:     item.Image,
			Category:  item.Category,
			Quantity:  item.Quantity,
		})
	}

	order, err := s.orders.CreateOrder(OrderDraft{
		CustomerID:    s.customerID,
		CustomerName:  s.address.FullName,
		CustomerEmail: s.address.Email,
		Items:         orderItems,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		ShippingCost:  totals.Shipping,
		Total:         totals.Total,
		Address:       *s.address,
		PaymentMethod: s.method,
		PaymentStatus: paymentStatus,
		Status:        orderStatus,
	})
	if err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.orderID = order.ID
	s.step = constants.CheckoutStepConfirmed
	logger.Infow("order_placed", "order_id", order.ID, "customer_id", s.customerID, "total", order.Total.String())
	return order, nil
}

// Reset 重置结算流程回 shipping 步骤（开始新一轮结算）
func (s *CheckoutService) Reset() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = constants.CheckoutStepShipping
	s.address = nil
	s.method = ""
	s.orderID = ""
	return s.stateLocked()
}

func (s *CheckoutService) stateLocked() CheckoutState {
	state := CheckoutState{
		Step:          s.step,
		PaymentMethod: s.method,
		OrderID:       s.orderID,
	}
	if s.address != nil {
		addr := *s.address
		state.Address = &addr
	}
	return state
}

func validateAddress(address models.Address) error {
	fields := []string{
		address.FullName,
		address.Email,
		address.Phone,
		address.Street,
		address.City,
		address.State,
		address.PostalCode,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return ErrValidation
		}
	}
	return nil
}

func isValidPaymentMethod(method string) bool {
	switch method {
	case constants.PaymentMethodCard,
		constants.PaymentMethodUPI,
		constants.PaymentMethodNetBanking,
		constants.PaymentMethodCOD:
		return true
	}
	return false
}
