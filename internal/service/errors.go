package service

import "errors"

// 购物车/收藏夹业务错误
var (
	ErrInvalidQuantity      = errors.New("数量必须大于 0")
	ErrItemNotFound         = errors.New("购物车中不存在该商品")
	ErrWishlistItemNotFound = errors.New("收藏夹中不存在该商品")
	ErrProductNotFound      = errors.New("商品不存在")
	ErrProductNotAvailable  = errors.New("商品已下架")
)

// 结算流程业务错误
var (
	ErrValidation           = errors.New("收货信息不完整")
	ErrEmptyCart            = errors.New("购物车为空，无法下单")
	ErrCheckoutStepInvalid  = errors.New("当前结算步骤不允许该操作")
	ErrPaymentMethodInvalid = errors.New("不支持的支付方式")
	ErrPaymentDeclined      = errors.New("支付未通过")
)

// 订单业务错误
var (
	ErrOrderNotFound     = errors.New("订单不存在")
	ErrDuplicateOrderID  = errors.New("订单号已存在")
	ErrInvalidTransition = errors.New("订单状态流转不合法")
	ErrInvalidOrderDraft = errors.New("订单数据不完整")
)
