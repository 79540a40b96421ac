package session

import (
	"sync"

	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/service"
)

// Session 单个购物会话的服务集合
// Cart 与 Wishlist 以会话为作用域，Checkout 以客户身份下单。
type Session struct {
	ID       string
	Customer string
	Cart     *service.CartService
	Wishlist *service.WishlistService
	Checkout *service.CheckoutService
}

// Manager 会话管理器：按会话 ID 惰性构造并缓存服务实例，
// 保证同一会话的所有请求命中同一组服务。
type Manager struct {
	store     kv.Store
	orders    *service.OrderService
	confirmer service.PaymentConfirmer

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager 创建会话管理器
func NewManager(store kv.Store, orders *service.OrderService, confirmer service.PaymentConfirmer) *Manager {
	return &Manager{
		store:     store,
		orders:    orders,
		confirmer: confirmer,
		sessions:  make(map[string]*Session),
	}
}

// Get 获取或创建会话；首次访问时从持久化回放购物车与收藏夹
func (m *Manager) Get(sessionID, customerID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		// 客户身份延迟绑定：游客会话登录后补齐
		if s.Customer != customerID && customerID != "" {
			s.Customer = customerID
			s.Checkout = service.NewCheckoutService(customerID, s.Cart, m.orders, m.confirmer)
		}
		return s
	}

	cart := service.NewCartService(sessionID, m.store)
	s := &Session{
		ID:       sessionID,
		Customer: customerID,
		Cart:     cart,
		Wishlist: service.NewWishlistService(sessionID, m.store),
		Checkout: service.NewCheckoutService(customerID, cart, m.orders, m.confirmer),
	}
	m.sessions[sessionID] = s
	return s
}

// Count 当前缓存的会话数量
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
