package buffers

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/retrorender/render"
)

// FlushablePool is a buffer pool that can discard its idle buffers.
// Concrete pool implementations registered with the Manager must support
// flushing so the render manager's flush pipeline can reach them.
type FlushablePool interface {
	render.BufferPool
	Flush()
}

// Manager keeps buffer pools in registration order and implements
// render.BufferManager. Registration order is the renderer priority: the
// render manager picks the first compatible pool.
type Manager struct {
	mu    sync.RWMutex
	pools []FlushablePool
}

// NewManager creates an empty pool manager.
func NewManager() *Manager {
	return &Manager{}
}

// RegisterPool appends a pool to the registration order.
func (m *Manager) RegisterPool(pool FlushablePool) {
	m.mu.Lock()
	m.pools = append(m.pools, pool)
	m.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "Manager.RegisterPool",
		"pools":    len(m.pools),
	}).Debug("Registered buffer pool")
}

// GetBufferPools returns all pools in registration order.
func (m *Manager) GetBufferPools() []render.BufferPool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	pools := make([]render.BufferPool, len(m.pools))
	for i, pool := range m.pools {
		pools[i] = pool
	}
	return pools
}

// FlushPools discards idle buffers in every registered pool.
func (m *Manager) FlushPools() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, pool := range m.pools {
		pool.Flush()
	}
}
