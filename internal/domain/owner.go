package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Owner represents a property owner / Représente un propriétaire de biens
type Owner struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Address  string             `bson:"address"`
	Photo    string             `bson:"photo"`
	Birthday string             `bson:"birthday"` // String-encoded date / Date encodée en chaîne
}
