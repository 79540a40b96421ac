package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/storefront-next/internal/constants"
)

// allowedTransitions 订单状态机：主线单向推进，取消可从任意非终态进入
var allowedTransitions = map[string][]string{
	constants.OrderStatusPending:    {constants.OrderStatusConfirmed, constants.OrderStatusCancelled},
	constants.OrderStatusConfirmed:  {constants.OrderStatusProcessing, constants.OrderStatusCancelled},
	constants.OrderStatusProcessing: {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:    {constants.OrderStatusDelivered, constants.OrderStatusCancelled},
	constants.OrderStatusDelivered:  {},
	constants.OrderStatusCancelled:  {},
}

// isTransitionAllowed 校验状态流转是否合法
func isTransitionAllowed(from, to string) bool {
	targets, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	for _, t := range targets {
		if t == to {
			return true
		}
	}
	return false
}

// isValidOrderStatus 校验是否为已知订单状态
func isValidOrderStatus(status string) bool {
	_, ok := allowedTransitions[status]
	return ok
}

// generateOrderID 生成订单号：SF + 秒级时间戳 + 6 位随机数字
func generateOrderID() string {
	return "SF" + time.Now().Format("20060102150405") + randNumeric(6)
}

func randNumeric(n int) string {
	const digits = "0123456789"
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return fmt.Sprintf("%0*d", n, time.Now().UnixNano()%1000000)
		}
		out[i] = digits[idx.Int64()]
	}
	return string(out)
}
