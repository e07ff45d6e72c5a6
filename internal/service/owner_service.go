package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Olprog59/go-realty/internal/cache"
	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/dto"
	"github.com/Olprog59/go-realty/internal/ports"
	"github.com/Olprog59/go-realty/internal/validation"
)

// OwnerService drives the owner lifecycle / Pilote le cycle de vie des propriétaires
type OwnerService struct {
	owners ports.OwnerRepository
	store  ports.Cache
}

// NewOwnerService creates an owner service instance / Crée une instance du service propriétaires
func NewOwnerService(owners ports.OwnerRepository, store ports.Cache) *OwnerService {
	return &OwnerService{owners: owners, store: store}
}

// List returns one page of owners matching the filter / Retourne une page de propriétaires correspondant au filtre
func (s *OwnerService) List(ctx context.Context, filter domain.OwnerFilter, page, limit int64, refresh bool) (*dto.Page[*dto.OwnerResponse], error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	key := cache.PageKey{
		Entity:  "owners",
		Page:    page,
		Limit:   limit,
		Name:    filter.Name,
		Address: filter.Address,
	}.String()

	return loadPage(ctx, s.store, key, refresh, func(ctx context.Context) (*dto.Page[*dto.OwnerResponse], error) {
		var (
			total  int64
			owners []*domain.Owner
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			total, err = s.owners.Count(gctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			owners, err = s.owners.Find(gctx, filter, skipFor(page, limit), limit)
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Error("failed to list owners", "err", err)
			return nil, err
		}

		data := make([]*dto.OwnerResponse, 0, len(owners))
		for _, o := range owners {
			data = append(data, dto.OwnerToDTO(o))
		}

		return &dto.Page[*dto.OwnerResponse]{
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

// GetByID retrieves an owner by id / Récupère un propriétaire par id
func (s *OwnerService) GetByID(ctx context.Context, id string) (*dto.OwnerResponse, error) {
	o, err := s.owners.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return dto.OwnerToDTO(o), nil
}

// Create stores a new owner and returns the persisted state / Stocke un nouveau propriétaire et retourne l'état persisté
func (s *OwnerService) Create(ctx context.Context, req *dto.OwnerRequest) (*dto.OwnerResponse, error) {
	o := dto.OwnerToModel(req)
	if err := validationFailed(validation.Owner(o)); err != nil {
		return nil, err
	}

	id, err := s.owners.Insert(ctx, o)
	if err != nil {
		slog.Error("failed to insert owner", "err", err)
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Replace overwrites a whole owner / Remplace un propriétaire entier
func (s *OwnerService) Replace(ctx context.Context, id string, req *dto.OwnerRequest) (*dto.OwnerResponse, error) {
	o := dto.OwnerToModel(req)
	if err := validationFailed(validation.Owner(o)); err != nil {
		return nil, err
	}

	if err := s.owners.Replace(ctx, id, o); err != nil {
		return nil, mapStoreError(err)
	}
	return s.GetByID(ctx, id)
}

// Patch applies a sparse update to an owner / Applique une mise à jour partielle à un propriétaire
func (s *OwnerService) Patch(ctx context.Context, id string, input map[string]any) (*dto.OwnerResponse, error) {
	fields, err := reconcilePatch(input, ownerPatchFields)
	if err != nil {
		return nil, err
	}

	if err := s.owners.UpdateFields(ctx, id, fields); err != nil {
		return nil, mapStoreError(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes an owner. Listings that referenced it keep their owner id;
// the reference simply stops resolving.
func (s *OwnerService) Delete(ctx context.Context, id string) error {
	return mapStoreError(s.owners.Delete(ctx, id))
}
