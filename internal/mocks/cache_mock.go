package mocks

import (
	"sync"

	"github.com/Olprog59/go-realty/internal/ports"
)

var _ ports.Cache = (*CacheMock)(nil)

// CacheMock is a map-backed cache with call counters / Cache en mémoire avec compteurs d'appels
type CacheMock struct {
	mu      sync.Mutex
	entries map[string]any

	GetCalls    int
	Hits        int
	SetCalls    int
	DeleteCalls int

	// Disabled turns every Get into a miss / Disabled transforme chaque Get en échec
	Disabled bool
}

// NewCacheMock creates an empty cache mock / Crée un mock de cache vide
func NewCacheMock() *CacheMock {
	return &CacheMock{entries: make(map[string]any)}
}

func (c *CacheMock) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GetCalls++
	if c.Disabled {
		return nil, false
	}
	value, ok := c.entries[key]
	if ok {
		c.Hits++
	}
	return value, ok
}

func (c *CacheMock) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCalls++
	c.entries[key] = value
}

func (c *CacheMock) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DeleteCalls++
	delete(c.entries, key)
}

// Contains reports whether a key is cached / Indique si une clé est en cache
func (c *CacheMock) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of cached entries / Retourne le nombre d'entrées en cache
func (c *CacheMock) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
