// Package service implements the business rules of the listing API: the
// cached query pipeline, entity lifecycles, partial updates, and account
// management. Handlers translate the sentinel errors below into HTTP
// status codes.
package service

import (
	"errors"
	"strings"
)

// Sentinel errors shared by all services / Erreurs sentinelles partagées par tous les services
var (
	// ErrNotFound reports a missing entity / Signale une entité introuvable
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden reports an operation the caller may not perform / Signale une opération interdite à l'appelant
	ErrForbidden = errors.New("operation not allowed")

	// ErrInvalidCredentials reports a failed login or password check / Signale un échec d'authentification
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken reports an email already registered / Signale un email déjà enregistré
	ErrEmailTaken = errors.New("email already registered")

	// ErrEmptyPatch reports a partial update with no recognized field / Signale une mise à jour partielle sans champ reconnu
	ErrEmptyPatch = errors.New("no recognized fields to update")
)

// ValidationError carries the per-field messages of a rejected payload / Porte les messages par champ d'une charge rejetée
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// validationFailed wraps validator output, or returns nil when clean / Encapsule la sortie du validateur, ou nil si propre
func validationFailed(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Fields: messages}
}
