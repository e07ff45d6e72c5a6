package cache

import (
	"time"

	"github.com/viccon/sturdyc"

	"github.com/Olprog59/go-realty/internal/ports"
)

var _ ports.Cache = (*Store)(nil)

// Store adapts a sturdyc client to the cache port / Adapte un client sturdyc au port de cache
// sturdyc shards its entries internally, so the store is safe under
// concurrent readers and writers; a racing Set on the same key is
// last-write-wins, which the pipeline tolerates.
type Store struct {
	client *sturdyc.Client[any]
}

// New creates the in-process TTL cache / Crée le cache TTL en mémoire
func New(capacity, shards int, ttl time.Duration, evictionPercentage int) *Store {
	return &Store{
		client: sturdyc.New[any](capacity, shards, ttl, evictionPercentage),
	}
}

// Get returns the cached value when present and fresh / Retourne la valeur en cache si présente et fraîche
func (s *Store) Get(key string) (any, bool) {
	return s.client.Get(key)
}

// Set stores a value with the configured TTL / Stocke une valeur avec le TTL configuré
func (s *Store) Set(key string, value any) {
	s.client.Set(key, value)
}

// Delete evicts a single key / Évince une seule clé
func (s *Store) Delete(key string) {
	s.client.Delete(key)
}
