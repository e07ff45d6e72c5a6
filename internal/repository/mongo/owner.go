package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/ports"
)

var _ ports.OwnerRepository = (*OwnerRepository)(nil)

// OwnerRepository wraps the owners collection / Encapsule la collection des propriétaires
type OwnerRepository struct {
	repo[domain.Owner]
}

// NewOwnerRepository creates the owners repository / Crée le repository des propriétaires
func NewOwnerRepository(db *mongo.Database, collection string, timeout time.Duration) *OwnerRepository {
	return &OwnerRepository{repo[domain.Owner]{coll: db.Collection(collection), timeout: timeout}}
}

func (r *OwnerRepository) Find(ctx context.Context, filter domain.OwnerFilter, skip, limit int64) ([]*domain.Owner, error) {
	return r.find(ctx, buildOwnerFilter(filter), skip, limit)
}

func (r *OwnerRepository) Count(ctx context.Context, filter domain.OwnerFilter) (int64, error) {
	return r.count(ctx, buildOwnerFilter(filter))
}

func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*domain.Owner, error) {
	return r.getByID(ctx, id)
}

func (r *OwnerRepository) Insert(ctx context.Context, o *domain.Owner) (string, error) {
	return r.insert(ctx, o)
}

func (r *OwnerRepository) Replace(ctx context.Context, id string, o *domain.Owner) error {
	return r.replace(ctx, id, o)
}

func (r *OwnerRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return r.updateFields(ctx, id, fields)
}

func (r *OwnerRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}
