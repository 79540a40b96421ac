package service

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
)

func validAddress() models.Address {
	return models.Address{
		FullName:   "张三",
		Email:      "zhangsan@example.com",
		Phone:      "13800000000",
		Street:     "幸福路 1 号",
		City:       "上海",
		State:      "上海",
		PostalCode: "200000",
	}
}

func newCheckoutFixture(t *testing.T, confirmer PaymentConfirmer) (*CartService, *CheckoutService, *OrderService) {
	t.Helper()
	store := kv.NewMemoryStore()
	cart := NewCartService("s1", store)
	orders := NewOrderService(kv.NewMemoryStore())
	checkout := NewCheckoutService("c1", cart, orders, confirmer)
	return cart, checkout, orders
}

func TestCheckoutHappyPath(t *testing.T) {
	cart, checkout, orders := newCheckoutFixture(t, NewAutoConfirmer())
	if _, err := cart.AddItem(testProduct(1, "键盘", 1000), 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	state, err := checkout.SubmitShipping(validAddress())
	if err != nil {
		t.Fatalf("SubmitShipping failed: %v", err)
	}
	if state.Step != constants.CheckoutStepPayment {
		t.Fatalf("expected step payment, got %s", state.Step)
	}

	if _, err := checkout.SelectPaymentMethod(constants.PaymentMethodCard); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}

	order, err := checkout.PlaceOrder()
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.Status != constants.OrderStatusConfirmed {
		t.Fatalf("auto-confirmed payment must yield confirmed order, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusCompleted {
		t.Fatalf("expected payment completed, got %s", order.PaymentStatus)
	}
	if order.CustomerName != "张三" || order.CustomerEmail != "zhangsan@example.com" {
		t.Fatalf("customer identity must come from the shipping address, got %s / %s", order.CustomerName, order.CustomerEmail)
	}
	if got := order.Total.String(); got != "2250.00" {
		t.Fatalf("expected total 2250.00, got %s", got)
	}

	if len(cart.Items()) != 0 {
		t.Fatalf("cart must be cleared after placing an order")
	}
	state = checkout.State()
	if state.Step != constants.CheckoutStepConfirmed || state.OrderID != order.ID {
		t.Fatalf("checkout must land on confirmed with the order id, got %+v", state)
	}

	stored, err := orders.GetOrderByID(order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID failed: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].Quantity != 2 {
		t.Fatalf("stored order must freeze the cart lines, got %+v", stored.Items)
	}
}

func TestCheckoutShippingValidation(t *testing.T) {
	_, checkout, _ := newCheckoutFixture(t, NewAutoConfirmer())

	addr := validAddress()
	addr.Phone = "   "
	if _, err := checkout.SubmitShipping(addr); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank phone, got %v", err)
	}
	if checkout.State().Step != constants.CheckoutStepShipping {
		t.Fatalf("failed validation must not advance the step")
	}
}

func TestCheckoutStepGating(t *testing.T) {
	cart, checkout, _ := newCheckoutFixture(t, NewAutoConfirmer())
	if _, err := cart.AddItem(testProduct(1, "键盘", 1000), 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// shipping 步骤不允许选择支付方式或下单
	if _, err := checkout.SelectPaymentMethod(constants.PaymentMethodCard); !errors.Is(err, ErrCheckoutStepInvalid) {
		t.Fatalf("expected ErrCheckoutStepInvalid, got %v", err)
	}
	if _, err := checkout.PlaceOrder(); !errors.Is(err, ErrCheckoutStepInvalid) {
		t.Fatalf("expected ErrCheckoutStepInvalid, got %v", err)
	}

	if _, err := checkout.SubmitShipping(validAddress()); err != nil {
		t.Fatalf("SubmitShipping failed: %v", err)
	}
	if _, err := checkout.SelectPaymentMethod("bitcoin"); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got %v", err)
	}
	// 未选支付方式不能下单
	if _, err := checkout.PlaceOrder(); !errors.Is(err, ErrPaymentMethodInvalid) {
		t.Fatalf("expected ErrPaymentMethodInvalid, got %v", err)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	_, checkout, _ := newCheckoutFixture(t, NewAutoConfirmer())
	if _, err := checkout.SubmitShipping(validAddress()); err != nil {
		t.Fatalf("SubmitShipping failed: %v", err)
	}
	if _, err := checkout.SelectPaymentMethod(constants.PaymentMethodUPI); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	if _, err := checkout.PlaceOrder(); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutPaymentDeclined(t *testing.T) {
	cart, checkout, orders := newCheckoutFixture(t, &StaticConfirmer{Status: constants.PaymentStatusFailed})
	if _, err := cart.AddItem(testProduct(1, "键盘", 1000), 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := checkout.SubmitShipping(validAddress()); err != nil {
		t.Fatalf("SubmitShipping failed: %v", err)
	}
	if _, err := checkout.SelectPaymentMethod(constants.PaymentMethodCard); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}

	if _, err := checkout.PlaceOrder(); !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}
	// 支付失败不产生订单，购物车保持原样
	if len(orders.ListAllOrders()) != 0 {
		t.Fatalf("declined payment must not create an order")
	}
	if len(cart.Items()) != 1 {
		t.Fatalf("declined payment must not clear the cart")
	}
	if checkout.State().Step != constants.CheckoutStepPayment {
		t.Fatalf("declined payment must keep the payment step")
	}
}

func TestCheckoutPendingPayment(t *testing.T) {
	cart, checkout, _ := newCheckoutFixture(t, &StaticConfirmer{Status: constants.PaymentStatusPending})
	if _, err := cart.AddItem(testProduct(1, "键盘", 1000), 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := checkout.SubmitShipping(validAddress()); err != nil {
		t.Fatalf("SubmitShipping failed: %v", err)
	}
	if _, err := checkout.SelectPaymentMethod(constants.PaymentMethodCOD); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}

	order, err := checkout.PlaceOrder()
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("pending payment must yield pending order, got %s", order.Status)
	}
	if order.PaymentStatus != constants.PaymentStatusPending {
		t.Fatalf("expected payment pending, got %s", order.PaymentStatus)
	}
}

func TestCheckoutOrderSnapshotIndependentOfCart(t *testing.T) {
	cart, checkout, orders := newCheckoutFixture(t, NewAutoConfirmer())
	if _, err := cart.AddItem(testProduct(1, "键盘", 1000), 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := checkout.SubmitShipping(validAddress()); err != nil {
		t.Fatalf("SubmitShipping failed: %v", err)
	}
	if _, err := checkout.SelectPaymentMethod(constants.PaymentMethodCard); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	order, err := checkout.PlaceOrder()
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	// 下单后继续操作购物车，订单冻结数据不受影响
	if _, err := cart.AddItem(testProduct(1, "键盘", 1000), 9); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	stored, err := orders.GetOrderByID(order.ID)
	if err != nil {
		t.Fatalf("GetOrderByID failed: %v", err)
	}
	if stored.Items[0].Quantity != 2 {
		t.Fatalf("order snapshot must be frozen, got quantity %d", stored.Items[0].Quantity)
	}
}

func TestPlaceOrderTotalsMatchFrozenItemsUnderConcurrentAdds(t *testing.T) {
	cart, checkout, _ := newCheckoutFixture(t, NewAutoConfirmer())
	if _, err := cart.AddItem(testProduct(1, "键盘", 1000), 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := checkout.SubmitShipping(validAddress()); err != nil {
		t.Fatalf("SubmitShipping failed: %v", err)
	}
	if _, err := checkout.SelectPaymentMethod(constants.PaymentMethodCard); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}

	// 下单过程中另一请求持续修改同一会话的购物车
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			_, _ = cart.AddItem(testProduct(2, "鼠标", 300), 1)
		}
	}()
	order, err := checkout.PlaceOrder()
	<-done
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	// 订单冻结的明细与合计必须出自同一份快照
	expected := pricing.TotalsFor(toCartItems(order.Items))
	if order.Subtotal.String() != expected.Subtotal.String() {
		t.Fatalf("subtotal %s does not match frozen items (want %s)", order.Subtotal.String(), expected.Subtotal.String())
	}
	if order.Total.String() != expected.Total.String() {
		t.Fatalf("total %s does not match frozen items (want %s)", order.Total.String(), expected.Total.String())
	}
}

func toCartItems(items []models.OrderItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return out
}

func TestCheckoutResetStartsNewRound(t *testing.T) {
	cart, checkout, _ := newCheckoutFixture(t, NewAutoConfirmer())
	if _, err := cart.AddItem(testProduct(1, "键盘", 1000), 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := checkout.SubmitShipping(validAddress()); err != nil {
		t.Fatalf("SubmitShipping failed: %v", err)
	}
	if _, err := checkout.SelectPaymentMethod(constants.PaymentMethodCard); err != nil {
		t.Fatalf("SelectPaymentMethod failed: %v", err)
	}
	if _, err := checkout.PlaceOrder(); err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}

	// confirmed 之后不能重复提交收货信息
	if _, err := checkout.SubmitShipping(validAddress()); !errors.Is(err, ErrCheckoutStepInvalid) {
		t.Fatalf("expected ErrCheckoutStepInvalid, got %v", err)
	}

	state := checkout.Reset()
	if state.Step != constants.CheckoutStepShipping || state.OrderID != "" || state.Address != nil {
		t.Fatalf("Reset must return to a clean shipping step, got %+v", state)
	}
}
