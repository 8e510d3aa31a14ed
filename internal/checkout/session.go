package checkout

import (
	"sync"

	"github.com/google/uuid"
)

// Manager tracks active storefront flows by session id.
type Manager struct {
	mu    sync.RWMutex
	flows map[string]*Flow
}

func NewManager() *Manager {
	return &Manager{flows: make(map[string]*Flow)}
}

// Put registers a flow and returns its session id.
func (m *Manager) Put(f *Flow) string {
	id := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flows[id] = f
	return id
}

func (m *Manager) Get(id string) (*Flow, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.flows[id]
	return f, ok
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, id)
}
