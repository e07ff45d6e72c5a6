package dto

import "github.com/Olprog59/go-realty/internal/domain"

// UserRequest is the wire shape for registering a user / Forme réseau pour inscrire un utilisateur
// The password travels only on write paths and is hashed before storage.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// UserResponse is the wire shape of a user / Forme réseau d'un utilisateur
// The password hash is never exposed on read paths.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginRequest is the wire shape for authentication / Forme réseau pour l'authentification
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordUpdateRequest is the wire shape for changing a password / Forme réseau pour changer un mot de passe
type PasswordUpdateRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// TokenRequest carries a raw token for refresh or validation / Porte un token brut pour le refresh ou la validation
type TokenRequest struct {
	Token string `json:"token"`
}

// UserToModel converts a request to the persisted model / Convertit une requête vers le modèle persisté
// The password is copied verbatim; hashing is the service's responsibility.
func UserToModel(req *UserRequest) *domain.User {
	role := domain.UserRole(req.Role)
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	}
}

// UserToDTO converts a model to its wire shape / Convertit un modèle vers sa forme réseau
func UserToDTO(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
