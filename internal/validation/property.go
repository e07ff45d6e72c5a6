package validation

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Olprog59/go-realty/internal/domain"
)

// Property validates a listing before create or replace / Valide une annonce avant création ou remplacement
// Invariants: price > 0, internal code > 0, construction year within [1800, current year].
func Property(p *domain.Property) []string {
	err := validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.Address, validation.Required),
		validation.Field(&p.Price, validation.Required, validation.Min(int64(1))),
		validation.Field(&p.CodeInternal, validation.Required, validation.Min(1)),
		validation.Field(&p.Year,
			validation.Required,
			validation.Min(domain.MinConstructionYear),
			validation.Max(time.Now().Year()),
		),
	)
	return messages(err)
}

// Image validates a property image / Valide une image de propriété
func Image(img *domain.PropertyImage) []string {
	err := validation.ValidateStruct(img,
		validation.Field(&img.PropertyID, validation.By(requiredObjectID)),
		validation.Field(&img.File, validation.Required),
	)
	return messages(err)
}

// Trace validates a sale trace / Valide une trace de vente
func Trace(t *domain.PropertyTrace) []string {
	err := validation.ValidateStruct(t,
		validation.Field(&t.PropertyID, validation.By(requiredObjectID)),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.DateSale, validation.Required),
		validation.Field(&t.Value, validation.Required, validation.Min(int64(1))),
		validation.Field(&t.Tax, validation.Min(int64(0))),
	)
	return messages(err)
}
