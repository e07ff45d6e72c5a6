package dto

import "github.com/Olprog59/go-realty/internal/domain"

// OwnerRequest is the wire shape for creating or replacing an owner / Forme réseau pour créer ou remplacer un propriétaire
type OwnerRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Photo    string `json:"photo"`
	Birthday string `json:"birthday"`
}

// OwnerResponse is the wire shape of an owner / Forme réseau d'un propriétaire
type OwnerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Photo    string `json:"photo"`
	Birthday string `json:"birthday"`
}

// OwnerToModel converts a request to the persisted model / Convertit une requête vers le modèle persisté
func OwnerToModel(req *OwnerRequest) *domain.Owner {
	return &domain.Owner{
		Name:     req.Name,
		Address:  req.Address,
		Photo:    req.Photo,
		Birthday: req.Birthday,
	}
}

// OwnerToDTO converts a model to its wire shape / Convertit un modèle vers sa forme réseau
func OwnerToDTO(o *domain.Owner) *OwnerResponse {
	return &OwnerResponse{
		ID:       o.ID.Hex(),
		Name:     o.Name,
		Address:  o.Address,
		Photo:    o.Photo,
		Birthday: o.Birthday,
	}
}
