package session

import (
	"testing"

	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/service"
)

func newTestManager() *Manager {
	store := kv.NewMemoryStore()
	return NewManager(store, service.NewOrderService(kv.NewMemoryStore()), service.NewAutoConfirmer())
}

func TestManagerReturnsSameSession(t *testing.T) {
	m := newTestManager()

	first := m.Get("s1", "c1")
	second := m.Get("s1", "c1")
	if first != second {
		t.Fatalf("same session id must return the same instance")
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 cached session, got %d", m.Count())
	}

	other := m.Get("s2", "c2")
	if other == first {
		t.Fatalf("different session ids must not share instances")
	}
}

func TestManagerSharesCartState(t *testing.T) {
	m := newTestManager()

	product := &models.Product{ID: 1, Name: "键盘", PriceAmount: models.NewMoneyFromInt(1000), IsActive: true}
	if _, err := m.Get("s1", "c1").Cart.AddItem(product, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	items := m.Get("s1", "c1").Cart.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("cart state must be shared across requests of one session, got %+v", items)
	}
}

func TestManagerRebindsCustomer(t *testing.T) {
	m := newTestManager()

	guest := m.Get("s1", "")
	product := &models.Product{ID: 1, Name: "键盘", PriceAmount: models.NewMoneyFromInt(1000), IsActive: true}
	if _, err := guest.Cart.AddItem(product, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	// 登录后绑定客户身份，购物车保留
	bound := m.Get("s1", "c1")
	if bound.Customer != "c1" {
		t.Fatalf("customer must be rebound, got %s", bound.Customer)
	}
	if len(bound.Cart.Items()) != 1 {
		t.Fatalf("cart must survive customer rebinding")
	}
}
