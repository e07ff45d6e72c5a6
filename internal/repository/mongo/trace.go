package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/ports"
)

var _ ports.TraceRepository = (*TraceRepository)(nil)

// TraceRepository wraps the sale traces collection / Encapsule la collection des traces de vente
type TraceRepository struct {
	repo[domain.PropertyTrace]
}

// NewTraceRepository creates the traces repository / Crée le repository des traces
func NewTraceRepository(db *mongo.Database, collection string, timeout time.Duration) *TraceRepository {
	return &TraceRepository{repo[domain.PropertyTrace]{coll: db.Collection(collection), timeout: timeout}}
}

func (r *TraceRepository) Find(ctx context.Context, filter domain.TraceFilter, skip, limit int64) ([]*domain.PropertyTrace, error) {
	return r.find(ctx, buildTraceFilter(filter), skip, limit)
}

func (r *TraceRepository) Count(ctx context.Context, filter domain.TraceFilter) (int64, error) {
	return r.count(ctx, buildTraceFilter(filter))
}

func (r *TraceRepository) GetByID(ctx context.Context, id string) (*domain.PropertyTrace, error) {
	return r.getByID(ctx, id)
}

func (r *TraceRepository) Insert(ctx context.Context, t *domain.PropertyTrace) (string, error) {
	return r.insert(ctx, t)
}

func (r *TraceRepository) Replace(ctx context.Context, id string, t *domain.PropertyTrace) error {
	return r.replace(ctx, id, t)
}

func (r *TraceRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return r.updateFields(ctx, id, fields)
}

func (r *TraceRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}

// DeleteByProperty cascades a listing deletion to its traces / Propage la suppression d'une annonce à ses traces
func (r *TraceRepository) DeleteByProperty(ctx context.Context, propertyID string) error {
	return r.deleteMany(ctx, bson.M{"idProperty": idOrNothing(propertyID)})
}
