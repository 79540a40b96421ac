package models

// CartItem 购物车行：加入时对商品字段做快照，数量 >= 1
// 同一商品在购物车中最多出现一行。
type CartItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"unit_price"`
	Image     string `json:"image"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
}

// WishlistItem 收藏夹条目：商品引用快照，无数量概念（集合语义）
type WishlistItem struct {
	ProductID     uint   `json:"product_id"`
	Name          string `json:"name"`
	UnitPrice     Money  `json:"unit_price"`
	OriginalPrice *Money `json:"original_price,omitempty"`
	Image         string `json:"image"`
	Category      string `json:"category"`
}
