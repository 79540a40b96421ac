package models

import (
	"time"
)

// Product 目录商品（只读引用，购物车在加入时复制字段）
type Product struct {
	ID            uint      `gorm:"primarykey" json:"id"`                          // 主键
	Name          string    `gorm:"not null" json:"name"`                          // 商品名称
	PriceAmount   Money     `gorm:"type:decimal(20,2);not null" json:"price"`      // 单价
	OriginalPrice *Money    `gorm:"type:decimal(20,2)" json:"original_price,omitempty"` // 划线价（用于折扣展示）
	Category      string    `gorm:"index" json:"category"`                         // 分类
	Image         string    `json:"image"`                                         // 图片地址
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`        // 是否在售
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"`                       // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
