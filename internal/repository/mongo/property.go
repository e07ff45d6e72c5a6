package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/ports"
)

// Compile-time check / Vérification à la compilation
var _ ports.PropertyRepository = (*PropertyRepository)(nil)

// PropertyRepository wraps the properties collection / Encapsule la collection des propriétés
type PropertyRepository struct {
	repo[domain.Property]
}

// NewPropertyRepository creates the properties repository / Crée le repository des propriétés
func NewPropertyRepository(db *mongo.Database, collection string, timeout time.Duration) *PropertyRepository {
	return &PropertyRepository{repo[domain.Property]{coll: db.Collection(collection), timeout: timeout}}
}

func (r *PropertyRepository) Find(ctx context.Context, filter domain.PropertyFilter, skip, limit int64) ([]*domain.Property, error) {
	return r.find(ctx, buildPropertyFilter(filter), skip, limit)
}

func (r *PropertyRepository) Count(ctx context.Context, filter domain.PropertyFilter) (int64, error) {
	return r.count(ctx, buildPropertyFilter(filter))
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	return r.getByID(ctx, id)
}

func (r *PropertyRepository) Insert(ctx context.Context, p *domain.Property) (string, error) {
	return r.insert(ctx, p)
}

func (r *PropertyRepository) Replace(ctx context.Context, id string, p *domain.Property) error {
	return r.replace(ctx, id, p)
}

func (r *PropertyRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return r.updateFields(ctx, id, fields)
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
