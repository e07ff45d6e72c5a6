package ports

// Cache is the process-local result cache used by the list pipeline and the
// single-entity lookups. Implementations must be safe for concurrent use;
// last-write-wins on a racing key is acceptable.
type Cache interface {
	// Get returns the cached value when present and fresh / Retourne la valeur en cache si présente et fraîche
	Get(key string) (any, bool)

	// Set stores a value under the key with the configured TTL / Stocke une valeur sous la clé avec le TTL configuré
	Set(key string, value any)

	// Delete evicts a single key / Évince une seule clé
	Delete(key string)
}
