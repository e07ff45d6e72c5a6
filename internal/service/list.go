package service

import (
	"context"

	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/ports"
)

// loadPage serves a page result from the cache when present, and otherwise
// builds it with fetch and writes it through under the same key. A refresh
// request always bypasses the lookup but still repopulates the entry.
func loadPage[T any](ctx context.Context, store ports.Cache, key string, refresh bool, fetch func(context.Context) (*dto.Page[T], error)) (*dto.Page[T], error) {
	if !refresh {
		if cached, ok := store.Get(key); ok {
			if page, ok := cached.(*dto.Page[T]); ok {
				return page, nil
			}
		}
	}

	page, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	store.Set(key, page)
	return page, nil
}
