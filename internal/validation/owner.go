package validation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Olprog59/go-realty/internal/domain"
)

// Owner validates an owner before create or replace / Valide un propriétaire avant création ou remplacement
// All descriptive fields must be non-empty.
func Owner(o *domain.Owner) []string {
	err := validation.ValidateStruct(o,
		validation.Field(&o.Name, validation.Required),
		validation.Field(&o.Address, validation.Required),
		validation.Field(&o.Photo, validation.Required),
		validation.Field(&o.Birthday, validation.Required),
	)
	return messages(err)
}
