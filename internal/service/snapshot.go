package service

import (
	"context"
	"encoding/json"

	"github.com/storefront-next/internal/constants"
	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/logger"
)

// snapshotVersion 当前持久化快照版本
const snapshotVersion = constants.SnapshotVersion

// loadSnapshot 读取快照原文；键不存在或读取失败时返回 nil（只告警，不中断启动）
func loadSnapshot(store kv.Store, key string) json.RawMessage {
	if store == nil {
		return nil
	}
	raw, found, err := store.Load(context.Background(), key)
	if err != nil {
		logger.Warnw("snapshot_load_failed", "key", key, "error", err)
		return nil
	}
	if !found {
		return nil
	}
	return raw
}

// saveSnapshot 持久化快照：写失败只告警，内存状态不回滚
func saveSnapshot(store kv.Store, key string, value interface{}) {
	if store == nil {
		return
	}
	if err := store.Save(context.Background(), key, value); err != nil {
		logger.Warnw("snapshot_save_failed", "key", key, "error", err)
	}
}

// decodeSnapshot 解析版本化快照；损坏或版本不符时返回 false，调用方回退为空状态
func decodeSnapshot(key string, raw json.RawMessage, dest interface{}, version *int) bool {
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warnw("snapshot_decode_failed", "key", key, "error", err)
		return false
	}
	if version == nil {
		return true
	}
	if *version != snapshotVersion {
		logger.Warnw("snapshot_version_mismatch", "key", key, "version", *version, "expected", snapshotVersion)
		return false
	}
	return true
}
