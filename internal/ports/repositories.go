// Package ports defines the narrow interfaces the services depend on.
// Implementations live under internal/repository; tests use the map-backed
// doubles from internal/mocks.
package ports

import (
	"context"

	"github.com/Olprog59/go-realty/internal/domain"
)

// PropertyRepository accesses the properties collection / Accède à la collection des propriétés
type PropertyRepository interface {
	// Find returns one page of listings matching the filter / Retourne une page d'annonces correspondant au filtre
	Find(ctx context.Context, filter domain.PropertyFilter, skip, limit int64) ([]*domain.Property, error)

	// Count returns the number of listings matching the filter / Retourne le nombre d'annonces correspondant au filtre
	Count(ctx context.Context, filter domain.PropertyFilter) (int64, error)

	// GetByID retrieves a listing by id / Récupère une annonce par id
	GetByID(ctx context.Context, id string) (*domain.Property, error)

	// Insert stores a new listing and returns its server-assigned id / Stocke une nouvelle annonce et retourne son id
	Insert(ctx context.Context, p *domain.Property) (string, error)

	// Replace overwrites the whole document / Remplace le document entier
	Replace(ctx context.Context, id string, p *domain.Property) error

	// UpdateFields applies a sparse field set in one round-trip / Applique un ensemble partiel de champs en un aller-retour
	UpdateFields(ctx context.Context, id string, fields map[string]any) error

	// Delete removes a listing by id / Supprime une annonce par id
	Delete(ctx context.Context, id string) error
}

// OwnerRepository accesses the owners collection / Accède à la collection des propriétaires
type OwnerRepository interface {
	Find(ctx context.Context, filter domain.OwnerFilter, skip, limit int64) ([]*domain.Owner, error)
	Count(ctx context.Context, filter domain.OwnerFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.Owner, error)
	Insert(ctx context.Context, o *domain.Owner) (string, error)
	Replace(ctx context.Context, id string, o *domain.Owner) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// ImageRepository accesses the property images collection / Accède à la collection des images
type ImageRepository interface {
	Find(ctx context.Context, filter domain.ImageFilter, skip, limit int64) ([]*domain.PropertyImage, error)
	Count(ctx context.Context, filter domain.ImageFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.PropertyImage, error)
	Insert(ctx context.Context, img *domain.PropertyImage) (string, error)
	Replace(ctx context.Context, id string, img *domain.PropertyImage) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error

	// FindByPropertyIDs fetches the images of a page of listings in one query / Récupère les images d'une page d'annonces en une requête
	FindByPropertyIDs(ctx context.Context, propertyIDs []string) ([]*domain.PropertyImage, error)

	// DeleteByProperty removes every image of a listing / Supprime toutes les images d'une annonce
	DeleteByProperty(ctx context.Context, propertyID string) error
}

// TraceRepository accesses the sale traces collection / Accède à la collection des traces de vente
type TraceRepository interface {
	Find(ctx context.Context, filter domain.TraceFilter, skip, limit int64) ([]*domain.PropertyTrace, error)
	Count(ctx context.Context, filter domain.TraceFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.PropertyTrace, error)
	Insert(ctx context.Context, t *domain.PropertyTrace) (string, error)
	Replace(ctx context.Context, id string, t *domain.PropertyTrace) error
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error

	// DeleteByProperty removes every trace of a listing / Supprime toutes les traces d'une annonce
	DeleteByProperty(ctx context.Context, propertyID string) error
}

// UserRepository accesses the users collection / Accède à la collection des utilisateurs
type UserRepository interface {
	List(ctx context.Context, skip, limit int64) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by unique email / Récupère un utilisateur par email unique
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	Insert(ctx context.Context, u *domain.User) (string, error)
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}
