package dto

import (
	"fmt"
	"time"

	"github.com/Olprog59/go-realty/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyRequest is the wire shape for creating or replacing a listing / Forme réseau pour créer ou remplacer une annonce
// The id is always server-generated and never accepted from the client.
type PropertyRequest struct {
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Price        int64         `json:"price"`
	CodeInternal int           `json:"codeInternal"`
	Year         int           `json:"year"`
	IDOwner      string        `json:"idOwner"`
	Image        *ImageRequest `json:"image,omitempty"` // Optional embedded image / Image optionnelle embarquée
}

// PropertyResponse is the wire shape of a listing / Forme réseau d'une annonce
type PropertyResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Address      string         `json:"address"`
	Price        int64          `json:"price"`
	CodeInternal int            `json:"codeInternal"`
	Year         int            `json:"year"`
	IDOwner      string         `json:"idOwner,omitempty"`
	Image        *ImageResponse `json:"image,omitempty"`
}

// ImageRequest is the wire shape for attaching an image / Forme réseau pour attacher une image
type ImageRequest struct {
	IDProperty string `json:"idProperty,omitempty"` // Ignored for embedded creation / Ignoré pour la création embarquée
	File       string `json:"file"`
	Enabled    *bool  `json:"enabled,omitempty"` // Defaults to true / Vrai par défaut
}

// ImageResponse is the wire shape of a property image / Forme réseau d'une image de propriété
type ImageResponse struct {
	ID         string `json:"id"`
	IDProperty string `json:"idProperty"`
	File       string `json:"file"`
	Enabled    bool   `json:"enabled"`
}

// TraceRequest is the wire shape for recording a sale / Forme réseau pour enregistrer une vente
type TraceRequest struct {
	IDProperty string    `json:"idProperty"`
	DateSale   time.Time `json:"dateSale"`
	Name       string    `json:"name"`
	Value      int64     `json:"value"`
	Tax        int64     `json:"tax"`
}

// TraceResponse is the wire shape of a sale trace / Forme réseau d'une trace de vente
type TraceResponse struct {
	ID         string    `json:"id"`
	IDProperty string    `json:"idProperty"`
	DateSale   time.Time `json:"dateSale"`
	Name       string    `json:"name"`
	Value      int64     `json:"value"`
	Tax        int64     `json:"tax"`
}

// PropertyToModel converts a request to the persisted model / Convertit une requête vers le modèle persisté
func PropertyToModel(req *PropertyRequest) (*domain.Property, error) {
	p := &domain.Property{
		Name:         req.Name,
		Address:      req.Address,
		Price:        req.Price,
		CodeInternal: req.CodeInternal,
		Year:         req.Year,
	}
	if req.IDOwner != "" {
		ownerID, err := primitive.ObjectIDFromHex(req.IDOwner)
		if err != nil {
			return nil, fmt.Errorf("invalid owner id %q", req.IDOwner)
		}
		p.OwnerID = ownerID
	}
	return p, nil
}

// PropertyToDTO converts a model to its wire shape / Convertit un modèle vers sa forme réseau
func PropertyToDTO(p *domain.Property, img *domain.PropertyImage) *PropertyResponse {
	resp := &PropertyResponse{
		ID:           p.ID.Hex(),
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
	}
	if p.HasOwner() {
		resp.IDOwner = p.OwnerID.Hex()
	}
	if img != nil {
		resp.Image = ImageToDTO(img)
	}
	return resp
}

// ImageToModel converts an image request to the persisted model / Convertit une requête image vers le modèle persisté
func ImageToModel(req *ImageRequest) (*domain.PropertyImage, error) {
	img := &domain.PropertyImage{
		File:    req.File,
		Enabled: true,
	}
	if req.Enabled != nil {
		img.Enabled = *req.Enabled
	}
	if req.IDProperty != "" {
		propertyID, err := primitive.ObjectIDFromHex(req.IDProperty)
		if err != nil {
			return nil, fmt.Errorf("invalid property id %q", req.IDProperty)
		}
		img.PropertyID = propertyID
	}
	return img, nil
}

// ImageToDTO converts an image model to its wire shape / Convertit un modèle image vers sa forme réseau
func ImageToDTO(img *domain.PropertyImage) *ImageResponse {
	return &ImageResponse{
		ID:         img.ID.Hex(),
		IDProperty: img.PropertyID.Hex(),
		File:       img.File,
		Enabled:    img.Enabled,
	}
}

// TraceToModel converts a trace request to the persisted model / Convertit une requête trace vers le modèle persisté
func TraceToModel(req *TraceRequest) (*domain.PropertyTrace, error) {
	t := &domain.PropertyTrace{
		DateSale: req.DateSale,
		Name:     req.Name,
		Value:    req.Value,
		Tax:      req.Tax,
	}
	if req.IDProperty != "" {
		propertyID, err := primitive.ObjectIDFromHex(req.IDProperty)
		if err != nil {
			return nil, fmt.Errorf("invalid property id %q", req.IDProperty)
		}
		t.PropertyID = propertyID
	}
	return t, nil
}

// TraceToDTO converts a trace model to its wire shape / Convertit un modèle trace vers sa forme réseau
func TraceToDTO(t *domain.PropertyTrace) *TraceResponse {
	return &TraceResponse{
		ID:         t.ID.Hex(),
		IDProperty: t.PropertyID.Hex(),
		DateSale:   t.DateSale,
		Name:       t.Name,
		Value:      t.Value,
		Tax:        t.Tax,
	}
}
