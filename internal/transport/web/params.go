package web

import (
	"fmt"
	"net/http"
	"strconv"
)

// pageParams carries the pagination controls of list endpoints / Porte les contrôles de pagination des endpoints de liste
type pageParams struct {
	Page    int64
	Limit   int64
	Refresh bool
}

// parsePageParams reads page, limit, and refresh from the query string.
// Absent values fall back to defaults; out-of-range values are clamped by the
// services, but a value that is not a number at all is a client error.
func parsePageParams(r *http.Request) (pageParams, error) {
	params := pageParams{Page: 1, Limit: 10}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return params, fmt.Errorf("page must be a number")
		}
		params.Page = page
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return params, fmt.Errorf("limit must be a number")
		}
		params.Limit = limit
	}

	if raw := r.URL.Query().Get("refresh"); raw != "" {
		refresh, err := strconv.ParseBool(raw)
		if err != nil {
			return params, fmt.Errorf("refresh must be a boolean")
		}
		params.Refresh = refresh
	}

	return params, nil
}

// optionalInt64Query reads an optional numeric query parameter / Lit un paramètre de requête numérique optionnel
func optionalInt64Query(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	return &value, nil
}

// optionalBoolQuery reads an optional boolean query parameter / Lit un paramètre de requête booléen optionnel
func optionalBoolQuery(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a boolean", name)
	}
	return &value, nil
}
