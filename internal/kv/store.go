package kv

import (
	"context"
	"encoding/json"
	"sync"
)

// Store 作用域键值持久化契约
// Load 返回 (原始 JSON, 是否存在, 错误)；Save 整体覆盖写入快照。
type Store interface {
	Load(ctx context.Context, key string) (json.RawMessage, bool, error)
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore 内存实现（测试与单进程开发用）
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load 读取快照
func (s *MemoryStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(raw))
	copy(copied, raw)
	return copied, true, nil
}

// Save 覆盖写入快照
func (s *MemoryStore) Save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = payload
	return nil
}

// Delete 删除快照
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
