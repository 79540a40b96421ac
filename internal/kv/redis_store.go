package kv

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/storefront-next/internal/constants"

	"github.com/redis/go-redis/v9"
)

// RedisStore Redis 实现：前缀隔离的 JSON 快照
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore 基于已初始化的 Redis 客户端创建快照存储
func NewRedisStore(client *redis.Client, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis 客户端未初始化")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = constants.RedisPrefixDefault
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) buildKey(key string) string {
	return s.prefix + ":" + key
}

// Load 读取快照
func (s *RedisStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	val, err := s.client.Get(ctx, s.buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return json.RawMessage(val), true, nil
}

// Save 覆盖写入快照（无过期时间）
func (s *RedisStore) Save(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.buildKey(key), payload, 0).Err()
}

// Delete 删除快照
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.buildKey(key)).Err()
}
