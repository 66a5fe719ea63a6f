// Package session 跟踪每个客户端当前选中的会话
package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// 选中状态在 Redis 中的过期时间（24小时）
	selectionTTL = 24 * time.Hour
	// Redis key 前缀
	selectionKeyPrefix = "selected_conversation:"
)

// Manager 选中状态管理器
// 内存为主，Redis 作为跨实例镜像；Redis 不可用时退化为纯内存
type Manager struct {
	mu     sync.RWMutex
	memory map[string]string
	redis  *redis.Client
}

// NewManager 创建选中状态管理器，redisClient 可以为 nil
func NewManager(redisClient *redis.Client) *Manager {
	return &Manager{
		memory: make(map[string]string),
		redis:  redisClient,
	}
}

// Selected 返回客户端当前选中的会话 ID，没有选中时返回空串
func (m *Manager) Selected(ctx context.Context, clientID string) string {
	m.mu.RLock()
	id, ok := m.memory[clientID]
	m.mu.RUnlock()
	if ok {
		return id
	}

	if m.redis != nil {
		val, err := m.redis.Get(ctx, selectionKeyPrefix+clientID).Result()
		if err == nil && val != "" {
			m.mu.Lock()
			m.memory[clientID] = val
			m.mu.Unlock()
			return val
		}
	}

	return ""
}

// Select 记录客户端选中的会话
func (m *Manager) Select(ctx context.Context, clientID, conversationID string) {
	m.mu.Lock()
	m.memory[clientID] = conversationID
	m.mu.Unlock()

	if m.redis != nil {
		m.redis.Set(ctx, selectionKeyPrefix+clientID, conversationID, selectionTTL)
	}
}

// Clear 清除客户端的选中状态
func (m *Manager) Clear(ctx context.Context, clientID string) {
	m.mu.Lock()
	delete(m.memory, clientID)
	m.mu.Unlock()

	if m.redis != nil {
		m.redis.Del(ctx, selectionKeyPrefix+clientID)
	}
}

// ClearIfSelected 仅当客户端选中的正是该会话时才清除
// 归档或删除其他会话不影响当前选中
func (m *Manager) ClearIfSelected(ctx context.Context, clientID, conversationID string) {
	if m.Selected(ctx, clientID) == conversationID {
		m.Clear(ctx, clientID)
	}
}

// ClearConversation 清除所有选中了该会话的客户端
// 用于无客户端上下文的批量归档
func (m *Manager) ClearConversation(ctx context.Context, conversationID string) {
	m.mu.Lock()
	for clientID, selected := range m.memory {
		if selected == conversationID {
			delete(m.memory, clientID)
		}
	}
	m.mu.Unlock()

	if m.redis == nil {
		return
	}

	// 其他实例写入的镜像键不在本地内存里，按值扫描清理
	iter := m.redis.Scan(ctx, 0, selectionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if val, err := m.redis.Get(ctx, key).Result(); err == nil && val == conversationID {
			m.redis.Del(ctx, key)
		}
	}
}
