package models

import (
	"time"
)

// KVSnapshot 键值快照行：购物车/收藏夹/订单的持久化载体
type KVSnapshot struct {
	Key       string    `gorm:"primarykey;type:varchar(200)" json:"key"` // 作用域键（cart:<session> 等）
	Value     string    `gorm:"type:text;not null" json:"value"`         // JSON 快照
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                 // 更新时间
}

// TableName 指定表名
func (KVSnapshot) TableName() string {
	return "kv_snapshots"
}
