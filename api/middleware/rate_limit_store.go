package middleware

import (
	"context"
	"sync"
	"time"
)

// MemoryRateStore is a process-local fixed-window counter used when Redis is
// not configured. Counts are not shared between replicas.
type MemoryRateStore struct {
	mu      sync.Mutex
	now     func() time.Time
	windows map[string]memoryWindow
}

type memoryWindow struct {
	count   int64
	expires time.Time
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{now: time.Now, windows: map[string]memoryWindow{}}
}

func (m *MemoryRateStore) FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[scope]
	if !ok || !now.Before(w.expires) {
		w = memoryWindow{expires: now.Add(window)}
		m.sweep(now)
	}
	w.count++
	m.windows[scope] = w
	return w.count <= limit, w.count, nil
}

// sweep drops expired windows. Caller holds mu.
func (m *MemoryRateStore) sweep(now time.Time) {
	for key, w := range m.windows {
		if !now.Before(w.expires) {
			delete(m.windows, key)
		}
	}
}
