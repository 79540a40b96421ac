package service

import (
	"sync"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/pricing"
)

// cartSnapshot 购物车持久化快照
type cartSnapshot struct {
	Version int               `json:"version"`
	Items   []models.CartItem `json:"items"`
}

// CartService 购物车服务（每个会话一个实例，由 session.Manager 构造持有）
// 同一商品最多一行；明细按加入顺序保存；合计永远按需重算。
type CartService struct {
	sessionID string
	store     kv.Store

	mu    sync.Mutex
	items []models.CartItem
}

// NewCartService 创建购物车服务并回放持久化快照
func NewCartService(sessionID string, store kv.Store) *CartService {
	s := &CartService{
		sessionID: sessionID,
		store:     store,
	}
	var snapshot cartSnapshot
	if decodeSnapshot(s.key(), loadSnapshot(store, s.key()), &snapshot, &snapshot.Version) {
		s.items = snapshot.Items
	}
	return s
}

func (s *CartService) key() string {
	return constants.KeyPrefixCart + s.sessionID
}

// AddItem 加入购物车：已存在则累加数量，否则在末尾插入新行
func (s *CartService) AddItem(product *models.Product, quantity int) ([]models.CartItem, error) {
	if product == nil || product.ID == 0 {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.PriceAmount,
			Image:     product.Image,
			Category:  product.Category,
			Quantity:  quantity,
		})
	}
	s.persistLocked()
	return s.itemsLocked(), nil
}

// RemoveItem 移除购物车行；商品不在购物车时为幂等空操作
func (s *CartService) RemoveItem(productID uint) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistLocked()
			break
		}
	}
	return s.itemsLocked()
}

// UpdateQuantity 覆盖设置数量；quantity <= 0 等价于移除
func (s *CartService) UpdateQuantity(productID uint, quantity int) ([]models.CartItem, error) {
	if quantity <= 0 {
		return s.RemoveItem(productID), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			s.persistLocked()
			return s.itemsLocked(), nil
		}
	}
	return nil, ErrItemNotFound
}

// Clear 清空购物车（幂等）
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.persistLocked()
}

// Items 返回当前明细副本（加入顺序）
func (s *CartService) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// Totals 实时计算合计
func (s *CartService) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.TotalsFor(s.items)
}

func (s *CartService) itemsLocked() []models.CartItem {
	copied := make([]models.CartItem, len(s.items))
	copy(copied, s.items)
	return copied
}

func (s *CartService) persistLocked() {
	saveSnapshot(s.store, s.key(), cartSnapshot{
		Version: snapshotVersion,
		Items:   s.items,
	})
}
