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

// TraceService drives the sale trace lifecycle / Pilote le cycle de vie des traces de vente
type TraceService struct {
	traces     ports.TraceRepository
	properties ports.PropertyRepository
	store      ports.Cache
}

// NewTraceService creates a trace service instance / Crée une instance du service de traces
func NewTraceService(traces ports.TraceRepository, properties ports.PropertyRepository, store ports.Cache) *TraceService {
	return &TraceService{traces: traces, properties: properties, store: store}
}

// List returns one page of sale traces matching the filter / Retourne une page de traces de vente correspondant au filtre
func (s *TraceService) List(ctx context.Context, filter domain.TraceFilter, page, limit int64, refresh bool) (*dto.Page[*dto.TraceResponse], error) {
	page = clampPage(page)
	limit = clampLimit(limit)

	key := cache.PageKey{
		Entity:     "traces",
		Page:       page,
		Limit:      limit,
		PropertyID: filter.PropertyID,
	}.String()

	return loadPage(ctx, s.store, key, refresh, func(ctx context.Context) (*dto.Page[*dto.TraceResponse], error) {
		var (
			total  int64
			traces []*domain.PropertyTrace
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			total, err = s.traces.Count(gctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			traces, err = s.traces.Find(gctx, filter, skipFor(page, limit), limit)
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Error("failed to list traces", "err", err)
			return nil, err
		}

		data := make([]*dto.TraceResponse, 0, len(traces))
		for _, t := range traces {
			data = append(data, dto.TraceToDTO(t))
		}

		return &dto.Page[*dto.TraceResponse]{
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

// GetByID retrieves a sale trace by id / Récupère une trace de vente par id
func (s *TraceService) GetByID(ctx context.Context, id string) (*dto.TraceResponse, error) {
	t, err := s.traces.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	return dto.TraceToDTO(t), nil
}

// Create records a sale against an existing listing / Enregistre une vente contre une annonce existante
func (s *TraceService) Create(ctx context.Context, req *dto.TraceRequest) (*dto.TraceResponse, error) {
	t, err := dto.TraceToModel(req)
	if err != nil {
		return nil, &ValidationError{Fields: []string{err.Error()}}
	}
	if err := validationFailed(validation.Trace(t)); err != nil {
		return nil, err
	}
	if err := s.checkPropertyExists(ctx, t.PropertyID.Hex()); err != nil {
		return nil, err
	}

	id, err := s.traces.Insert(ctx, t)
	if err != nil {
		slog.Error("failed to insert trace", "err", err)
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Replace overwrites a whole sale trace / Remplace une trace de vente entière
func (s *TraceService) Replace(ctx context.Context, id string, req *dto.TraceRequest) (*dto.TraceResponse, error) {
	t, err := dto.TraceToModel(req)
	if err != nil {
		return nil, &ValidationError{Fields: []string{err.Error()}}
	}
	if err := validationFailed(validation.Trace(t)); err != nil {
		return nil, err
	}
	if err := s.checkPropertyExists(ctx, t.PropertyID.Hex()); err != nil {
		return nil, err
	}

	if err := s.traces.Replace(ctx, id, t); err != nil {
		return nil, mapStoreError(err)
	}
	return s.GetByID(ctx, id)
}

// Patch applies a sparse update to a sale trace / Applique une mise à jour partielle à une trace de vente
func (s *TraceService) Patch(ctx context.Context, id string, input map[string]any) (*dto.TraceResponse, error) {
	fields, err := reconcilePatch(input, tracePatchFields)
	if err != nil {
		return nil, err
	}

	if propertyID, ok := fields["idProperty"]; ok {
		if err := s.checkPropertyExists(ctx, propertyID.(primitive.ObjectID).Hex()); err != nil {
			return nil, err
		}
	}

	if err := s.traces.UpdateFields(ctx, id, fields); err != nil {
		return nil, mapStoreError(err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a sale trace by id / Supprime une trace de vente par id
func (s *TraceService) Delete(ctx context.Context, id string) error {
	return mapStoreError(s.traces.Delete(ctx, id))
}

// checkPropertyExists rejects a trace that references an unknown listing / Rejette une trace qui référence une annonce inconnue
func (s *TraceService) checkPropertyExists(ctx context.Context, propertyID string) error {
	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrNoRecord) {
			return &ValidationError{Fields: []string{"idProperty: property not found"}}
		}
		return err
	}
	return nil
}
