// Package repository defines the typed errors shared by every store
// implementation. Services match on these sentinels instead of driver
// internals, mirroring the hexagonal split between ports and adapters.
package repository

import "errors"

var (
	// ErrNoRecord signals that no document matched / Signale qu'aucun document ne correspond
	ErrNoRecord = errors.New("repository: no matching document")

	// ErrDup signals a unique-key collision / Signale une collision de clé unique
	ErrDup = errors.New("repository: duplicate key")

	// ErrUnavailable signals that the store cannot be reached / Signale que le store est injoignable
	ErrUnavailable = errors.New("repository: document store unavailable")
)
