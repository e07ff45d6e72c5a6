// Package validation holds the per-entity rule sets run before create and
// replace operations. Each entry point returns a flat list of field-level
// messages so the transport layer can ship them verbatim in the error envelope.
package validation

import (
	"errors"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field keys in error messages follow the stored document names / Les clés de champ suivent les noms du document stocké
func init() {
	validation.ErrorTag = "bson"
}

// messages flattens an ozzo error into sorted field messages / Aplati une erreur ozzo en messages triés par champ
func messages(err error) []string {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field+": "+fieldErrs[field].Error())
	}
	return out
}

// requiredObjectID rejects the zero ObjectID / Rejette l'ObjectID zéro
func requiredObjectID(value any) error {
	id, ok := value.(primitive.ObjectID)
	if !ok || id.IsZero() {
		return errors.New("cannot be blank")
	}
	return nil
}
