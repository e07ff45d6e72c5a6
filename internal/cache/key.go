// Package cache provides the process-local result cache of the query
// pipeline: a typed, injective key for page results and a sturdyc-backed
// store with a configurable TTL.
package cache

import (
	"net/url"
	"strconv"
	"strings"
)

// keySeparator delimits the segments of a serialized key / Délimite les segments d'une clé sérialisée
const keySeparator = "::"

// PageKey identifies one cached page result. Building keys from the full
// structured tuple (instead of ad-hoc string concatenation) guarantees that
// distinct parameter combinations never collide: every field is always
// emitted, in a fixed order, with its raw value escaped so it cannot contain
// the separator, and absent numeric bounds serialize differently from zero.
type PageKey struct {
	Entity     string // properties, owners, images, traces, users
	Page       int64
	Limit      int64
	Name       string
	Address    string
	MinPrice   *int64
	MaxPrice   *int64
	OwnerID    string
	PropertyID string
	Enabled    *bool
}

// String serializes the key deterministically / Sérialise la clé de façon déterministe
func (k PageKey) String() string {
	segments := []string{
		"page",
		url.QueryEscape(k.Entity),
		"p=" + strconv.FormatInt(k.Page, 10),
		"l=" + strconv.FormatInt(k.Limit, 10),
		"name=" + url.QueryEscape(k.Name),
		"addr=" + url.QueryEscape(k.Address),
		"min=" + optInt(k.MinPrice),
		"max=" + optInt(k.MaxPrice),
		"owner=" + url.QueryEscape(k.OwnerID),
		"prop=" + url.QueryEscape(k.PropertyID),
		"en=" + optBool(k.Enabled),
	}
	return strings.Join(segments, keySeparator)
}

// EntityKey builds the key of a single-entity lookup / Construit la clé d'une recherche d'entité unique
func EntityKey(entity, field, value string) string {
	return strings.Join([]string{
		"entity",
		url.QueryEscape(entity),
		url.QueryEscape(field),
		url.QueryEscape(value),
	}, keySeparator)
}

func optInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func optBool(v *bool) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatBool(*v)
}
