package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinConstructionYear is the oldest accepted construction year / Année de construction minimale acceptée
const MinConstructionYear = 1800

// Property represents a real-estate listing / Représente une annonce immobilière
type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Address      string             `bson:"address"`
	Price        int64              `bson:"price"`        // Smallest currency unit / Plus petite unité monétaire
	CodeInternal int                `bson:"codeInternal"` // Internal reference code / Code de référence interne
	Year         int                `bson:"year"`
	OwnerID      primitive.ObjectID `bson:"idOwner"`
}

// PropertyImage represents an image attached to a property / Représente une image attachée à une propriété
type PropertyImage struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PropertyID primitive.ObjectID `bson:"idProperty"`
	File       string             `bson:"file"`
	Enabled    bool               `bson:"enabled"`
}

// PropertyTrace represents a past sale of a property / Représente une vente passée d'une propriété
type PropertyTrace struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PropertyID primitive.ObjectID `bson:"idProperty"`
	DateSale   time.Time          `bson:"dateSale"`
	Name       string             `bson:"name"`
	Value      int64              `bson:"value"`
	Tax        int64              `bson:"tax"`
}

// HasOwner checks if the listing references an owner / Vérifie si l'annonce référence un propriétaire
func (p *Property) HasOwner() bool {
	return !p.OwnerID.IsZero()
}
