package pricing

import (
	"github.com/storefront-next/internal/models"

	"github.com/shopspring/decimal"
)

// 税率与运费规则
var taxRate = decimal.NewFromFloat(0.10)

// FlatShippingFee 固定运费（整数货币单位）
const FlatShippingFee = 50

// Totals 购物车金额合计
type Totals struct {
	Subtotal  models.Money `json:"subtotal"`
	Tax       models.Money `json:"tax"`
	Shipping  models.Money `json:"shipping"`
	Total     models.Money `json:"total"`
	ItemCount int          `json:"item_count"`
}

// ComputeTax 计算税额：subtotal × 10%，四舍五入到整数货币单位
func ComputeTax(subtotal decimal.Decimal) decimal.Decimal {
	// decimal.Round 对正数即 round-half-up
	return subtotal.Mul(taxRate).Round(0)
}

// ComputeShipping 计算运费：有商品时收固定运费，空购物车为 0
func ComputeShipping(itemCount int) decimal.Decimal {
	if itemCount > 0 {
		return decimal.NewFromInt(FlatShippingFee)
	}
	return decimal.Zero
}

// ComputeTotal 计算实付金额
func ComputeTotal(subtotal, tax, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Add(shipping).Round(2)
}

// TotalsFor 根据购物车明细实时计算合计（不缓存）
func TotalsFor(items []models.CartItem) Totals {
	subtotal := decimal.Zero
	itemCount := 0
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		line := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line).Round(2)
		itemCount += item.Quantity
	}
	tax := ComputeTax(subtotal)
	shipping := ComputeShipping(itemCount)
	return Totals{
		Subtotal:  models.NewMoneyFromDecimal(subtotal),
		Tax:       models.NewMoneyFromDecimal(tax),
		Shipping:  models.NewMoneyFromDecimal(shipping),
		Total:     models.NewMoneyFromDecimal(ComputeTotal(subtotal, tax, shipping)),
		ItemCount: itemCount,
	}
}
