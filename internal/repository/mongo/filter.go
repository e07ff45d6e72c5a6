package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Olprog59/go-realty/internal/domain"
)

// The filter builders are pure: they translate the optional criteria of a
// domain filter into a conjunction of store predicates. Absent criteria are
// omitted rather than turned into wildcards, so the empty filter becomes the
// match-all document bson.M{}.

// containsIgnoreCase builds a case-insensitive substring predicate / Construit un prédicat de sous-chaîne insensible à la casse
func containsIgnoreCase(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// idOrNothing parses a referenced id; a malformed hex keeps the raw string,
// which matches no stored ObjectID and therefore yields an empty result
// instead of an error.
func idOrNothing(id string) any {
	if parsed, ok := oid(id); ok {
		return parsed
	}
	return id
}

func buildPropertyFilter(f domain.PropertyFilter) bson.M {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = containsIgnoreCase(f.Name)
	}
	if f.Address != "" {
		filter["address"] = containsIgnoreCase(f.Address)
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if f.OwnerID != "" {
		filter["idOwner"] = idOrNothing(f.OwnerID)
	}
	return filter
}

func buildOwnerFilter(f domain.OwnerFilter) bson.M {
	filter := bson.M{}
	if f.Name != "" {
		filter["name"] = containsIgnoreCase(f.Name)
	}
	if f.Address != "" {
		filter["address"] = containsIgnoreCase(f.Address)
	}
	return filter
}

func buildImageFilter(f domain.ImageFilter) bson.M {
	filter := bson.M{}
	if f.PropertyID != "" {
		filter["idProperty"] = idOrNothing(f.PropertyID)
	}
	if f.Enabled != nil {
		filter["enabled"] = *f.Enabled
	}
	return filter
}

func buildTraceFilter(f domain.TraceFilter) bson.M {
	filter := bson.M{}
	if f.PropertyID != "" {
		filter["idProperty"] = idOrNothing(f.PropertyID)
	}
	return filter
}
