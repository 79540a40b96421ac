package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// 支付方式常量
const (
	PaymentMethodCard       = "card"
	PaymentMethodUPI        = "upi"
	PaymentMethodNetBanking = "netbanking"
	PaymentMethodCOD        = "cash-on-delivery"
)

// 结算步骤常量
const (
	CheckoutStepShipping  = "shipping"
	CheckoutStepPayment   = "payment"
	CheckoutStepConfirmed = "confirmed"
)

// 持久化键前缀常量
// 客户索引使用独立命名空间，避免与 orders:<customerID> 键冲突。
const (
	KeyPrefixCart     = "cart:"
	KeyPrefixWishlist = "wishlist:"
	KeyPrefixOrders   = "orders:"
	KeyOrderIndex     = "orders_index"
)

// 持久化快照版本号
const SnapshotVersion = 1

// 持久化驱动常量
const (
	PersistenceDriverDatabase = "database"
	PersistenceDriverRedis    = "redis"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sf"
)

// 会话与客户标识请求头
const (
	HeaderSessionID  = "X-Session-ID"
	HeaderCustomerID = "X-Customer-ID"
)
