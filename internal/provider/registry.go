package provider

import (
	"sync"

	"github.com/google/uuid"
)

// Registry collects EIP-6963 announcements. Re-announcing an rdns replaces the earlier entry.
type Registry struct {
	mu        sync.RWMutex
	providers []InjectedProvider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Announce adds p. A missing UUID is generated, as wallets are required to send one per session.
func (r *Registry) Announce(p InjectedProvider) {
	if p.Info.UUID == "" {
		p.Info.UUID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.providers {
		if existing.Info.RDNS == p.Info.RDNS {
			r.providers[i] = p
			return
		}
	}
	r.providers = append(r.providers, p)
}

// Providers returns announced providers in announcement order.
func (r *Registry) Providers() []InjectedProvider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]InjectedProvider, len(r.providers))
	copy(out, r.providers)
	return out
}

// ByRDNS looks up a provider by its reverse-DNS name.
func (r *Registry) ByRDNS(rdns string) (InjectedProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.providers {
		if p.Info.RDNS == rdns {
			return p, true
		}
	}
	return InjectedProvider{}, false
}
