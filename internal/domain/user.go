package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserRole represents user's role for authorization / Représente le rôle utilisateur pour l'autorisation
type UserRole string

const (
	RoleUser  UserRole = "user"  // Default role for new accounts / Rôle par défaut des nouveaux comptes
	RoleAdmin UserRole = "admin" // Full admin access / Accès administrateur complet
)

// IsValid checks if role is valid / Vérifie si le rôle est valide
func (r UserRole) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account of the API / Représente un compte de l'API
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"` // Bcrypt hash, never the plaintext / Hash bcrypt, jamais le texte en clair
	Role     UserRole           `bson:"role"`
}

// IsAdmin checks admin privileges / Vérifie les privilèges admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
