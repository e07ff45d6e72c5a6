package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Olprog59/go-realty/internal/repository"
)

// repo is the generic collection wrapper shared by every entity repository.
// Results are always sorted by _id so pagination stays stable across pages.
type repo[T any] struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// opCtx bounds one store operation / Borne une opération du store
func (r *repo[T]) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *repo[T]) find(ctx context.Context, filter bson.M, skip, limit int64) ([]*T, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translate(err)
	}

	var out []*T
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *repo[T]) findAll(ctx context.Context, filter bson.M) ([]*T, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, translate(err)
	}

	var out []*T
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *repo[T]) count(ctx context.Context, filter bson.M) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, translate(err)
	}
	return total, nil
}

func (r *repo[T]) getByID(ctx context.Context, id string) (*T, error) {
	docID, ok := oid(id)
	if !ok {
		return nil, repository.ErrNoRecord
	}
	return r.getOne(ctx, bson.M{"_id": docID})
}

func (r *repo[T]) getOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var doc T
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (r *repo[T]) insert(ctx context.Context, doc *T) (string, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", translate(err)
	}
	inserted, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", repository.ErrNoRecord
	}
	return inserted.Hex(), nil
}

func (r *repo[T]) replace(ctx context.Context, id string, doc *T) error {
	docID, ok := oid(id)
	if !ok {
		return repository.ErrNoRecord
	}

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": docID}, doc)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNoRecord
	}
	return nil
}

// updateFields applies the whole sparse set atomically in one $set / Applique l'ensemble partiel en un seul $set atomique
func (r *repo[T]) updateFields(ctx context.Context, id string, fields map[string]any) error {
	docID, ok := oid(id)
	if !ok {
		return repository.ErrNoRecord
	}

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": docID}, bson.M{"$set": fields})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNoRecord
	}
	return nil
}

func (r *repo[T]) deleteByID(ctx context.Context, id string) error {
	docID, ok := oid(id)
	if !ok {
		return repository.ErrNoRecord
	}

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": docID})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNoRecord
	}
	return nil
}

// deleteMany is used by the cascade paths; zero deletions is not an error.
func (r *repo[T]) deleteMany(ctx context.Context, filter bson.M) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, filter); err != nil {
		return translate(err)
	}
	return nil
}
