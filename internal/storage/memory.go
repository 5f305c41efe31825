package storage

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemorySize = 512

// MemoryKV 进程内 KV，容量满时按 LRU 淘汰。用于测试以及没有外部存储的本地运行
type MemoryKV struct {
	cache *lru.Cache[string, string]
}

func NewMemoryKV(size int) (*MemoryKV, error) {
	if size <= 0 {
		size = defaultMemorySize
	}
	c, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}
	return &MemoryKV{cache: c}, nil
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.cache.Get(key)
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.cache.Add(key, value)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.cache.Remove(key)
	return nil
}

// Len 当前条目数
func (m *MemoryKV) Len() int {
	return m.cache.Len()
}
