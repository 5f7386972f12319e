package handlers

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Registry keeps games whose connection dropped so the player can resume
// them with the session key until the TTL runs out.
type Registry struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{cache: cache.New(ttl, ttl)}
}

func (r *Registry) Park(p *playSession) {
	r.cache.SetDefault(p.key, p)
}

// Take removes the parked session so only one connection can own it.
func (r *Registry) Take(key string) (*playSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.cache.Get(key)
	if !ok {
		return nil, false
	}
	r.cache.Delete(key)
	return v.(*playSession), true
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

func (r *Registry) Close() {
	r.cache.Flush()
}
