package service

import (
	"sync"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/models"
)

// wishlistSnapshot 收藏夹持久化快照
type wishlistSnapshot struct {
	Version int                   `json:"version"`
	Items   []models.WishlistItem `json:"items"`
}

// WishlistService 收藏夹服务（集合语义：同一商品最多一条）
type WishlistService struct {
	sessionID string
	store     kv.Store

	mu    sync.Mutex
	items []models.WishlistItem
}

// NewWishlistService 创建收藏夹服务并回放持久化快照
func NewWishlistService(sessionID string, store kv.Store) *WishlistService {
	s := &WishlistService{
		sessionID: sessionID,
		store:     store,
	}
	var snapshot wishlistSnapshot
	if decodeSnapshot(s.key(), loadSnapshot(store, s.key()), &snapshot, &snapshot.Version) {
		s.items = snapshot.Items
	}
	return s
}

func (s *WishlistService) key() string {
	return constants.KeyPrefixWishlist + s.sessionID
}

// Add 收藏商品；重复收藏为幂等空操作
func (s *WishlistService) Add(product *models.Product) ([]models.WishlistItem, error) {
	if product == nil || product.ID == 0 {
		return nil, ErrProductNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			return s.itemsLocked(), nil
		}
	}
	s.items = append(s.items, models.WishlistItem{
		ProductID:     product.ID,
		Name:          product.Name,
		UnitPrice:     product.PriceAmount,
		OriginalPrice: product.OriginalPrice,
		Image:         product.Image,
		Category:      product.Category,
	})
	s.persistLocked()
	return s.itemsLocked(), nil
}

// Remove 取消收藏；不存在时为幂等空操作
func (s *WishlistService) Remove(productID uint) []models.WishlistItem {
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

// Items 返回当前收藏副本
func (s *WishlistService) Items() []models.WishlistItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsLocked()
}

// MoveToCart 收藏转购物车：加入购物车成功后才从收藏夹移除，
// 对调用方表现为单步操作（要么两者都生效，要么都不生效）。
func (s *WishlistService) MoveToCart(productID uint, cart *CartService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.items {
		if s.items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrWishlistItemNotFound
	}

	item := s.items[idx]
	product := models.Product{
		ID:          item.ProductID,
		Name:        item.Name,
		PriceAmount: item.UnitPrice,
		Image:       item.Image,
		Category:    item.Category,
		IsActive:    true,
	}
	if _, err := cart.AddItem(&product, 1); err != nil {
		return err
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	s.persistLocked()
	return nil
}

func (s *WishlistService) itemsLocked() []models.WishlistItem {
	copied := make([]models.WishlistItem, len(s.items))
	copy(copied, s.items)
	return copied
}

func (s *WishlistService) persistLocked() {
	saveSnapshot(s.store, s.key(), wishlistSnapshot{
		Version: snapshotVersion,
		Items:   s.items,
	})
}
