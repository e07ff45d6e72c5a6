package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Olprog59/go-realty/internal/domain"
)

// patchField describes one updatable field: the stored column it maps to,
// how a raw JSON value is coerced into the stored type, and an optional
// invariant checked after coercion.
type patchField struct {
	column string
	coerce func(any) (any, error)
	check  func(any) error
}

// Per-entity tables of the fields a partial update may touch. Keys are
// lowercase; incoming keys are matched case-insensitively and anything
// outside the table is silently dropped.
var (
	propertyPatchFields = map[string]patchField{
		"name":         {column: "name", coerce: coerceString, check: checkNonEmpty},
		"address":      {column: "address", coerce: coerceString, check: checkNonEmpty},
		"price":        {column: "price", coerce: coerceInt64, check: checkMinInt64(1)},
		"codeinternal": {column: "codeInternal", coerce: coerceInt64, check: checkMinInt64(1)},
		"year":         {column: "year", coerce: coerceInt64, check: checkYear},
		"idowner":      {column: "idOwner", coerce: coerceObjectID},
	}

	ownerPatchFields = map[string]patchField{
		"name":     {column: "name", coerce: coerceString, check: checkNonEmpty},
		"address":  {column: "address", coerce: coerceString, check: checkNonEmpty},
		"photo":    {column: "photo", coerce: coerceString, check: checkNonEmpty},
		"birthday": {column: "birthday", coerce: coerceString, check: checkNonEmpty},
	}

	imagePatchFields = map[string]patchField{
		"file":       {column: "file", coerce: coerceString, check: checkNonEmpty},
		"enabled":    {column: "enabled", coerce: coerceBool},
		"idproperty": {column: "idProperty", coerce: coerceObjectID},
	}

	tracePatchFields = map[string]patchField{
		"name":       {column: "name", coerce: coerceString, check: checkNonEmpty},
		"datesale":   {column: "dateSale", coerce: coerceTime},
		"value":      {column: "value", coerce: coerceInt64, check: checkMinInt64(1)},
		"tax":        {column: "tax", coerce: coerceInt64, check: checkMinInt64(0)},
		"idproperty": {column: "idProperty", coerce: coerceObjectID},
	}

	userPatchFields = map[string]patchField{
		"name":     {column: "name", coerce: coerceString, check: checkNonEmpty},
		"email":    {column: "email", coerce: coerceString, check: checkNonEmpty},
		"password": {column: "password", coerce: coerceString, check: checkPasswordLength},
		"role":     {column: "role", coerce: coerceString, check: checkRole},
	}
)

// reconcilePatch turns a raw JSON object into the sparse field set to apply.
// Unknown keys are dropped, recognized keys are coerced and checked, and a
// patch that ends up touching nothing is rejected so the caller never issues
// a no-op write.
func reconcilePatch(input map[string]any, table map[string]patchField) (map[string]any, error) {
	fields := make(map[string]any, len(input))
	var bad []string

	for key, raw := range input {
		spec, ok := table[strings.ToLower(key)]
		if !ok {
			continue
		}
		value, err := spec.coerce(raw)
		if err != nil {
			bad = append(bad, fmt.Sprintf("%s: %v", spec.column, err))
			continue
		}
		if spec.check != nil {
			if err := spec.check(value); err != nil {
				bad = append(bad, fmt.Sprintf("%s: %v", spec.column, err))
				continue
			}
		}
		fields[spec.column] = value
	}

	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, &ValidationError{Fields: bad}
	}
	if len(fields) == 0 {
		return nil, ErrEmptyPatch
	}
	return fields, nil
}

// patchTouches reports whether the raw input names the given column / Indique si l'entrée brute nomme la colonne donnée
func patchTouches(input map[string]any, table map[string]patchField, column string) bool {
	for key := range input {
		if spec, ok := table[strings.ToLower(key)]; ok && spec.column == column {
			return true
		}
	}
	return false
}

func coerceString(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string")
	}
	return s, nil
}

// coerceInt64 accepts the float64 values encoding/json produces as well as
// native integers from in-process callers. Fractional values are rejected.
func coerceInt64(v any) (any, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return nil, fmt.Errorf("must be an integer")
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	default:
		return nil, fmt.Errorf("must be an integer")
	}
}

func coerceBool(v any) (any, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("must be a boolean")
	}
	return b, nil
}

func coerceObjectID(v any) (any, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("must be a string id")
	}
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func coerceTime(v any) (any, error) {
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return nil, fmt.Errorf("must be an RFC 3339 timestamp")
		}
		return parsed, nil
	case time.Time:
		return t, nil
	default:
		return nil, fmt.Errorf("must be an RFC 3339 timestamp")
	}
}

func checkNonEmpty(v any) error {
	if v.(string) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

func checkMinInt64(min int64) func(any) error {
	return func(v any) error {
		if v.(int64) < min {
			return fmt.Errorf("must be no less than %d", min)
		}
		return nil
	}
}

func checkYear(v any) error {
	year := v.(int64)
	if year < domain.MinConstructionYear || year > int64(time.Now().Year()) {
		return fmt.Errorf("must be between %d and the current year", domain.MinConstructionYear)
	}
	return nil
}

func checkPasswordLength(v any) error {
	s := v.(string)
	if len(s) < 8 || len(s) > 72 {
		return fmt.Errorf("must be between 8 and 72 characters")
	}
	return nil
}

func checkRole(v any) error {
	if !domain.UserRole(v.(string)).IsValid() {
		return fmt.Errorf("must be either user or admin")
	}
	return nil
}
