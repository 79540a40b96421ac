package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
)

const (
	cacheKeyProductList = "catalog:products"
	cacheKeyProductFmt  = "catalog:product:%d"
)

// CachedCatalog 带 Redis 缓存的目录装饰器；缓存不可用时直接穿透到底层实现
type CachedCatalog struct {
	inner Service
	ttl   time.Duration
}

// NewCachedCatalog 创建缓存目录
func NewCachedCatalog(inner Service, ttl time.Duration) *CachedCatalog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedCatalog{inner: inner, ttl: ttl}
}

// GetProduct 按 ID 获取商品（优先命中缓存）
func (c *CachedCatalog) GetProduct(id uint) (*models.Product, error) {
	key := fmt.Sprintf(cacheKeyProductFmt, id)
	var cached models.Product
	if hit, err := cache.GetJSON(context.Background(), key, &cached); err == nil && hit {
		return &cached, nil
	}

	product, err := c.inner.GetProduct(id)
	if err != nil || product == nil {
		return product, err
	}
	if err := cache.SetJSON(context.Background(), key, product, c.ttl); err != nil {
		logger.Warnw("catalog_cache_set_failed", "key", key, "error", err)
	}
	return product, nil
}

// ListProducts 获取在售商品列表（优先命中缓存）
func (c *CachedCatalog) ListProducts() ([]models.Product, error) {
	var cached []models.Product
	if hit, err := cache.GetJSON(context.Background(), cacheKeyProductList, &cached); err == nil && hit {
		return cached, nil
	}

	products, err := c.inner.ListProducts()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(context.Background(), cacheKeyProductList, products, c.ttl); err != nil {
		logger.Warnw("catalog_cache_set_failed", "key", cacheKeyProductList, "error", err)
	}
	return products, nil
}
