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

// PropertyService drives the listing lifecycle and the cached query pipeline / Pilote le cycle de vie des annonces et le pipeline de requêtes en cache
type PropertyService struct {
	properties ports.PropertyRepository
	owners     ports.OwnerRepository
	images     ports.ImageRepository
	traces     ports.TraceRepository
	store      ports.Cache
}

// NewPropertyService creates a listing service instance / Crée une instance du service d'annonces
func NewPropertyService(
	properties ports.PropertyRepository,
	owners ports.OwnerRepository,
	images ports.ImageRepository,
	traces ports.TraceRepository,
	store ports.Cache,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		owners:     owners,
		images:     images,
		traces:     traces,
		store:      store,
	}
}

// List returns one page of listings matching the filter, enriched with their
// cover image. Count and page fetch run concurrently; the assembled page is
// cached under the full parameter tuple and served from there until the TTL
// expires, unless the caller forces a refresh.
func (s *PropertyService) List(ctx context.Context, filter domain.PropertyFilter, page, limit int64, refresh bool) (*dto.Page[*dto.PropertyResponse], error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	key := cache.PageKey{
		Entity:   "properties",
		Page:     page,
		Limit:    limit,
		Name:     filter.Name,
		Address:  filter.Address,
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
		OwnerID:  filter.OwnerID,
	}.String()

	return loadPage(ctx, s.store, key, refresh, func(ctx context.Context) (*dto.Page[*dto.PropertyResponse], error) {
		var (
			total      int64
			properties []*domain.Property
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			total, err = s.properties.Count(gctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			properties, err = s.properties.Find(gctx, filter, skipFor(page, limit), limit)
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Error("failed to list properties", "err", err)
			return nil, err
		}

		covers, err := s.coverImages(ctx, properties)
		if err != nil {
			return nil, err
		}

		data := make([]*dto.PropertyResponse, 0, len(properties))
		for _, p := range properties {
			data = append(data, dto.PropertyToDTO(p, covers[p.ID.Hex()]))
		}

		return &dto.Page[*dto.PropertyResponse]{
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

// coverImages fetches the images of a whole page in one query and keeps the
// first enabled one per listing.
func (s *PropertyService) coverImages(ctx context.Context, properties []*domain.Property) (map[string]*domain.PropertyImage, error) {
	if len(properties) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID.Hex())
	}

	images, err := s.images.FindByPropertyIDs(ctx, ids)
	if err != nil {
		slog.Error("failed to load cover images", "err", err)
		return nil, err
	}

	covers := make(map[string]*domain.PropertyImage, len(properties))
	for _, img := range images {
		if !img.Enabled {
			continue
		}
		propertyID := img.PropertyID.Hex()
		if _, taken := covers[propertyID]; !taken {
			covers[propertyID] = img
		}
	}
	return covers, nil
}

// GetByID retrieves a single listing with its cover image / Récupère une annonce avec son image de couverture
func (s *PropertyService) GetByID(ctx context.Context, id string) (*dto.PropertyResponse, error) {
	p, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}

	covers, err := s.coverImages(ctx, []*domain.Property{p})
	if err != nil {
		return nil, err
	}
	return dto.PropertyToDTO(p, covers[p.ID.Hex()]), nil
}

// Create stores a new listing, optionally with an embedded first image, and
// returns the persisted state.
func (s *PropertyService) Create(ctx context.Context, req *dto.PropertyRequest) (*dto.PropertyResponse, error) {
	p, err := dto.PropertyToModel(req)
	if err != nil {
		return nil, &ValidationError{Fields: []string{err.Error()}}
	}
	if err := validationFailed(validation.Property(p)); err != nil {
		return nil, err
	}
	if err := s.checkOwnerExists(ctx, p); err != nil {
		return nil, err
	}

	id, err := s.properties.Insert(ctx, p)
	if err != nil {
		slog.Error("failed to insert property", "err", err)
		return nil, err
	}

	if req.Image != nil {
		img, err := dto.ImageToModel(req.Image)
		if err != nil {
			return nil, &ValidationError{Fields: []string{err.Error()}}
		}
		img.PropertyID = p.ID
		if err := validationFailed(validation.Image(img)); err != nil {
			return nil, err
		}
		if _, err := s.images.Insert(ctx, img); err != nil {
			slog.Error("failed to insert embedded image", "property_id", id, "err", err)
			return nil, err
		}
	}

	return s.GetByID(ctx, id)
}

// Replace overwrites a whole listing / Remplace une annonce entière
func (s *PropertyService) Replace(ctx context.Context, id string, req *dto.PropertyRequest) (*dto.PropertyResponse, error) {
	p, err := dto.PropertyToModel(req)
	if err != nil {
		return nil, &ValidationError{Fields: []string{err.Error()}}
	}
	if err := validationFailed(validation.Property(p)); err != nil {
		return nil, err
	}
	if err := s.checkOwnerExists(ctx, p); err != nil {
		return nil, err
	}

	if err := s.properties.Replace(ctx, id, p); err != nil {
		return nil, mapStoreError(err)
	}
	return s.GetByID(ctx, id)
}

// Patch applies a sparse update to a listing. The raw JSON object is
// reconciled against the table of updatable fields, then written in a single
// round-trip.
func (s *PropertyService) Patch(ctx context.Context, id string, input map[string]any) (*dto.PropertyResponse, error) {
	fields, err := reconcilePatch(input, propertyPatchFields)
	if err != nil {
		return nil, err
	}

	if ownerID, ok := fields["idOwner"]; ok {
		p := &domain.Property{OwnerID: ownerID.(primitive.ObjectID)}
		if err := s.checkOwnerExists(ctx, p); err != nil {
			return nil, err
		}
	}

	if err := s.properties.UpdateFields(ctx, id, fields); err != nil {
		return nil, mapStoreError(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a listing and cascades to its images and sale traces / Supprime une annonce et propage aux images et traces de vente
func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := s.properties.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}

	if err := s.images.DeleteByProperty(ctx, id); err != nil {
		slog.Error("failed to cascade image deletion", "property_id", id, "err", err)
		return err
	}
	if err := s.traces.DeleteByProperty(ctx, id); err != nil {
		slog.Error("failed to cascade trace deletion", "property_id", id, "err", err)
		return err
	}
	return nil
}

// checkOwnerExists rejects a listing that references an unknown owner / Rejette une annonce qui référence un propriétaire inconnu
func (s *PropertyService) checkOwnerExists(ctx context.Context, p *domain.Property) error {
	if !p.HasOwner() {
		return nil
	}
	if _, err := s.owners.GetByID(ctx, p.OwnerID.Hex()); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return &ValidationError{Fields: []string{"idOwner: owner not found"}}
		}
		return err
	}
	return nil
}

// mapStoreError translates repository sentinels into service sentinels / Traduit les sentinelles du dépôt en sentinelles de service
func mapStoreError(err error) error {
	if errors.Is(err, repository.ErrNoRecord) {
		return ErrNotFound
	}
	return err
}
