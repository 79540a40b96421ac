package catalog

import (
	"errors"
	"sort"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// Service 商品目录只读接口（目录数据归外部所有，本引擎只复制字段）
type Service interface {
	GetProduct(id uint) (*models.Product, error)
	ListProducts() ([]models.Product, error)
}

// GormCatalog GORM 实现
type GormCatalog struct {
	db *gorm.DB
}

// NewGormCatalog 创建目录服务
func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// GetProduct 按 ID 获取商品，不存在时返回 nil
func (c *GormCatalog) GetProduct(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, nil
	}
	var product models.Product
	err := c.db.Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts 获取在售商品列表
func (c *GormCatalog) ListProducts() ([]models.Product, error) {
	var products []models.Product
	if err := c.db.Where("is_active = ?", true).Order("id asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// StaticCatalog 静态目录（测试用）
type StaticCatalog struct {
	products map[uint]models.Product
}

// NewStaticCatalog 创建静态目录
func NewStaticCatalog(products ...models.Product) *StaticCatalog {
	m := make(map[uint]models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &StaticCatalog{products: m}
}

// GetProduct 按 ID 获取商品
func (c *StaticCatalog) GetProduct(id uint) (*models.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, nil
	}
	copied := p
	return &copied, nil
}

// ListProducts 获取在售商品列表
func (c *StaticCatalog) ListProducts() ([]models.Product, error) {
	products := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.IsActive {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
