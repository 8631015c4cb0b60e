package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memEntry struct {
	val string
	exp time.Time // нулевое значение: без срока
}

// MemoryCache используется, когда Redis выключен (REDIS_ENABLED=false).
// Данные живут только в памяти одного процесса.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]memEntry
	now  func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]memEntry), now: time.Now}
}

func (m *MemoryCache) SetRateLimit(ctx context.Context, key string, ttl time.Duration) error {
	return m.Set(ctx, key, "1", ttl)
}

func (m *MemoryCache) CheckRateLimit(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.lookup(key)
	return ok, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}
	e := memEntry{val: s}
	if ttl > 0 {
		e.exp = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, _ := m.lookup(key)
	return e.val, nil
}

func (m *MemoryCache) Take(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.lookup(key)
	if ok {
		delete(m.data, key)
	}
	return e.val, nil
}

func (m *MemoryCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// lookup вызывается под m.mu. Просроченные записи удаляются лениво.
func (m *MemoryCache) lookup(key string) (memEntry, bool) {
	e, ok := m.data[key]
	if !ok {
		return memEntry{}, false
	}
	if !e.exp.IsZero() && !m.now().Before(e.exp) {
		delete(m.data, key)
		return memEntry{}, false
	}
	return e, true
}
