package cache

import (
	"fmt"
	"testing"
	"time"

	"grocery-engine/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, maxSize int, ttl time.Duration) *Manager {
	t.Helper()
	m := NewManager(&config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	})
	require.NotNil(t, m)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestManagerSetGet(t *testing.T) {
	m := newTestManager(t, 8, time.Minute)

	require.NoError(t, m.Set("grocery:items:plan-1:1", `{"items":[]}`))

	value, ok := m.Get("grocery:items:plan-1:1")
	assert.True(t, ok)
	assert.Equal(t, `{"items":[]}`, value)

	_, ok = m.Get("grocery:items:plan-1:2")
	assert.False(t, ok)
}

func TestManagerExpiry(t *testing.T) {
	m := newTestManager(t, 8, 10*time.Millisecond)

	require.NoError(t, m.Set("key", "value"))
	time.Sleep(20 * time.Millisecond)

	_, ok := m.Get("key")
	assert.False(t, ok)
}

func TestManagerInvalidate(t *testing.T) {
	m := newTestManager(t, 8, time.Minute)

	require.NoError(t, m.Set("key", "value"))
	m.Invalidate("key")

	_, ok := m.Get("key")
	assert.False(t, ok)
}

func TestManagerLRUEviction(t *testing.T) {
	m := newTestManager(t, 2, time.Minute)

	require.NoError(t, m.Set("a", "1"))
	require.NoError(t, m.Set("b", "2"))

	// 提高 a 的訪問次數，滿載時 b 先被淘汰
	_, _ = m.Get("a")
	_, _ = m.Get("a")
	_, _ = m.Get("b")

	require.NoError(t, m.Set("c", "3"))

	_, okA := m.Get("a")
	_, okB := m.Get("b")
	_, okC := m.Get("c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
}

func TestManagerStats(t *testing.T) {
	m := newTestManager(t, 8, time.Minute)

	require.NoError(t, m.Set("key", "value"))
	_, _ = m.Get("key")
	_, _ = m.Get("absent")

	stats := m.GetStats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
}

func TestManagerNilIsSafe(t *testing.T) {
	var m *Manager

	_, ok := m.Get("key")
	assert.False(t, ok)
	assert.NoError(t, m.Set("key", "value"))
	m.Invalidate("key")
	assert.NoError(t, m.Close())
	assert.Equal(t, map[string]interface{}{"enabled": false}, m.GetStats())
}

func TestManagerDisabledReturnsNil(t *testing.T) {
	m := NewManager(&config.Config{Cache: config.CacheConfig{Enabled: false}})
	assert.Nil(t, m)
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := newTestManager(t, 128, time.Minute)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				key := fmt.Sprintf("key-%d-%d", n, j)
				_ = m.Set(key, "value")
				_, _ = m.Get(key)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
