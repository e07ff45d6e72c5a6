package service

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/Olprog59/go-realty/internal/cache"
	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/ports"
	"github.com/Olprog59/go-realty/internal/repository"
	"github.com/Olprog59/go-realty/internal/validation"
)

// ImageService drives the property image lifecycle / Pilote le cycle de vie des images de propriété
type ImageService struct {
	images     ports.ImageRepository
	properties ports.PropertyRepository
	store      ports.Cache
}

// NewImageService creates an image service instance / Crée une instance du service d'images
func NewImageService(images ports.ImageRepository, properties ports.PropertyRepository, store ports.Cache) *ImageService {
	return &ImageService{images: images, properties: properties, store: store}
}

// List returns one page of images matching the filter / Retourne une page d'images correspondant au filtre
func (s *ImageService) List(ctx context.Context, filter domain.ImageFilter, page, limit int64, refresh bool) (*dto.Page[*dto.ImageResponse], error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	key := cache.PageKey{
		Entity:     "images",
		Page:       page,
		Limit:      limit,
		PropertyID: filter.PropertyID,
		Enabled:    filter.Enabled,
	}.String()

	return loadPage(ctx, s.store, key, refresh, func(ctx context.Context) (*dto.Page[*dto.ImageResponse], error) {
		var (
			total  int64
			images []*domain.PropertyImage
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			total, err = s.images.Count(gctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			images, err = s.images.Find(gctx, filter, skipFor(page, limit), limit)
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Error("failed to list images", "err", err)
			return nil, err
		}

		data := make([]*dto.ImageResponse, 0, len(images))
		for _, img := range images {
			data = append(data, dto.ImageToDTO(img))
		}

		return &dto.Page[*dto.ImageResponse]{
			Data: data,
			Meta: dto.PageMeta{
				Page:     page,
				Limit:    limit,
				Total:    total,
				LastPage: lastPage(total, limit),
			},
		}, nil
	})
}

// GetByID retrieves an image by id / Récupère une image par id
func (s *ImageService) GetByID(ctx context.Context, id string) (*dto.ImageResponse, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return dto.ImageToDTO(img), nil
}

// Create attaches a new image to an existing listing / Attache une nouvelle image à une annonce existante
func (s *ImageService) Create(ctx context.Context, req *dto.ImageRequest) (*dto.ImageResponse, error) {
	img, err := dto.ImageToModel(req)
	if err != nil {
		return nil, &ValidationError{Fields: []string{err.Error()}}
	}
	if err := validationFailed(validation.Image(img)); err != nil {
		return nil, err
	}
	if err := s.checkPropertyExists(ctx, img.PropertyID.Hex()); err != nil {
		return nil, err
	}

	id, err := s.images.Insert(ctx, img)
	if err != nil {
		slog.Error("failed to insert image", "err", err)
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Replace overwrites a whole image / Remplace une image entière
func (s *ImageService) Replace(ctx context.Context, id string, req *dto.ImageRequest) (*dto.ImageResponse, error) {
	img, err := dto.ImageToModel(req)
	if err != nil {
		return nil, &ValidationError{Fields: []string{err.Error()}}
	}
	if err := validationFailed(validation.Image(img)); err != nil {
		return nil, err
	}
	if err := s.checkPropertyExists(ctx, img.PropertyID.Hex()); err != nil {
		return nil, err
	}

	if err := s.images.Replace(ctx, id, img); err != nil {
		return nil, mapStoreError(err)
	}
	return s.GetByID(ctx, id)
}

// Patch applies a sparse update to an image / Applique une mise à jour partielle à une image
func (s *ImageService) Patch(ctx context.Context, id string, input map[string]any) (*dto.ImageResponse, error) {
	fields, err := reconcilePatch(input, imagePatchFields)
	if err != nil {
		return nil, err
	}

	if propertyID, ok := fields["idProperty"]; ok {
		if err := s.checkPropertyExists(ctx, propertyID.(primitive.ObjectID).Hex()); err != nil {
			return nil, err
		}
	}

	if err := s.images.UpdateFields(ctx, id, fields); err != nil {
		return nil, mapStoreError(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes an image by id / Supprime une image par id
func (s *ImageService) Delete(ctx context.Context, id string) error {
	return mapStoreError(s.images.Delete(ctx, id))
}

// checkPropertyExists rejects an image that references an unknown listing / Rejette une image qui référence une annonce inconnue
func (s *ImageService) checkPropertyExists(ctx context.Context, propertyID string) error {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return &ValidationError{Fields: []string{"idProperty: property not found"}}
		}
		return err
	}
	return nil
}
