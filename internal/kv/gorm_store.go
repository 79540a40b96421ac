package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/storefront-next/internal/models"

	"gorm.io/gorm"
)

// GormStore GORM 实现：每个键一行，JSON 文本整体覆盖
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建数据库快照存储
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load 读取快照
func (s *GormStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var row models.KVSnapshot
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(row.Value), true, nil
}

// Save 覆盖写入快照
func (s *GormStore) Save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	now := time.Now()
	var existing models.KVSnapshot
	err = s.db.WithContext(ctx).Where("key = ?", key).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.db.WithContext(ctx).Create(&models.KVSnapshot{
			Key:       key,
			Value:     string(payload),
			UpdatedAt: now,
		}).Error
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
		"value":      string(payload),
		"updated_at": now,
	}).Error
}

// Delete 删除快照
func (s *GormStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.KVSnapshot{}).Error
}
