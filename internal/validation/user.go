package validation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Olprog59/go-realty/internal/domain"
)

// User validates an account before registration / Valide un compte avant inscription
// The password here is still the plaintext candidate; the 72-byte ceiling is the
// bcrypt input limit.
func User(u *domain.User) []string {
	err := validation.ValidateStruct(u,
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&u.Role, validation.In(domain.RoleUser, domain.RoleAdmin)),
	)
	return messages(err)
}
