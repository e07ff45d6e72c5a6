package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Olprog59/go-realty/internal/domain"
	"github.com/Olprog59/go-realty/internal/ports"
)

var _ ports.ImageRepository = (*ImageRepository)(nil)

// ImageRepository wraps the property images collection / Encapsule la collection des images
type ImageRepository struct {
	repo[domain.PropertyImage]
}

// NewImageRepository creates the images repository / Crée le repository des images
func NewImageRepository(db *mongo.Database, collection string, timeout time.Duration) *ImageRepository {
	return &ImageRepository{repo[domain.PropertyImage]{coll: db.Collection(collection), timeout: timeout}}
}

func (r *ImageRepository) Find(ctx context.Context, filter domain.ImageFilter, skip, limit int64) ([]*domain.PropertyImage, error) {
	return r.find(ctx, buildImageFilter(filter), skip, limit)
}

func (r *ImageRepository) Count(ctx context.Context, filter domain.ImageFilter) (int64, error) {
	return r.count(ctx, buildImageFilter(filter))
}

func (r *ImageRepository) GetByID(ctx context.Context, id string) (*domain.PropertyImage, error) {
	return r.getByID(ctx, id)
}

func (r *ImageRepository) Insert(ctx context.Context, img *domain.PropertyImage) (string, error) {
	return r.insert(ctx, img)
}

func (r *ImageRepository) Replace(ctx context.Context, id string, img *domain.PropertyImage) error {
	return r.replace(ctx, id, img)
}

func (r *ImageRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	return r.updateFields(ctx, id, fields)
}

func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	return r.deleteByID(ctx, id)
}

// FindByPropertyIDs fetches the images of a whole result page in one query / Récupère les images d'une page entière en une requête
// Malformed ids are skipped; they cannot reference a stored document.
func (r *ImageRepository) FindByPropertyIDs(ctx context.Context, propertyIDs []string) ([]*domain.PropertyImage, error) {
	ids := make([]primitive.ObjectID, 0, len(propertyIDs))
	for _, id := range propertyIDs {
		if parsed, ok := oid(id); ok {
			ids = append(ids, parsed)
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findAll(ctx, bson.M{"idProperty": bson.M{"$in": ids}})
}

// DeleteByProperty cascades a listing deletion to its images / Propage la suppression d'une annonce à ses images
func (r *ImageRepository) DeleteByProperty(ctx context.Context, propertyID string) error {
	return r.deleteMany(ctx, bson.M{"idProperty": idOrNothing(propertyID)})
}
