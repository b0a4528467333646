package contacts

import (
	"log/slog"
	"sync"
)

type backendKey struct {
	accountID string
	region    string
}

// Registry hands out one Backend per account and region, creating each on
// first use. It must be created via NewRegistry and passed explicitly to the
// components that need it.
type Registry struct {
	logger *slog.Logger

	mu       sync.RWMutex
	backends map[backendKey]*Backend
}

// NewRegistry creates an empty Registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		logger:   log,
		backends: map[backendKey]*Backend{},
	}
}

// Backend returns the backend for accountID and region, creating it if
// needed.
func (r *Registry) Backend(accountID, region string) *Backend {
	key := backendKey{accountID: accountID, region: region}
	r.mu.RLock()
	backend, ok := r.backends[key]
	r.mu.RUnlock()
	if ok {
		return backend
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if backend, ok := r.backends[key]; ok {
		return backend
	}
	backend = NewBackend(r.logger, accountID, region)
	r.backends[key] = backend
	return backend
}

// Len reports how many backends have been created.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.backends)
}

// Reset drops every backend and its data.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends = map[backendKey]*Backend{}
}
