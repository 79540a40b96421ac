package models

import (
	"time"
)

// Address 收货地址（值类型，随订单冻结存储）
type Address struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

// OrderItem 订单行：下单瞬间冻结的购物车行副本
type OrderItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unit_price"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
}

// Order 订单记录
// 创建后除 Status、PaymentStatus 与 UpdatedAt 外不可变。
type Order struct {
	ID            string      `json:"id"`             // 订单号（系统生成，全局唯一）
	CustomerID    string      `json:"customer_id"`    // 客户标识（外部会话协作方提供）
	CustomerName  string      `json:"customer_name"`  // 客户姓名
	CustomerEmail string      `json:"customer_email"` // 客户邮箱
	Items         []OrderItem `json:"items"`          // 订单行
	Subtotal      Money       `json:"subtotal"`       // 商品小计
	Tax           Money       `json:"tax"`            // 税额
	ShippingCost  Money       `json:"shipping_cost"`  // 运费
	Total         Money       `json:"total"`          // 实付金额
	Address       Address     `json:"address"`        // 收货地址
	PaymentMethod string      `json:"payment_method"` // 支付方式
	PaymentStatus string      `json:"payment_status"` // 支付状态
	Status        string      `json:"status"`         // 订单状态
	CreatedAt     time.Time   `json:"created_at"`     // 创建时间
	UpdatedAt     time.Time   `json:"updated_at"`     // 更新时间
}
